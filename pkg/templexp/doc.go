// Package templexp 提供配置字符串的 Shell 参数展开。
//
// 该包仅处理 ${...} 语法，用于 confgen 自身的设置文件，
// 以及显式开启 --expand-env 时对配置值的展开。
// 不执行命令、不引入模板引擎，强调可读性与可预测性。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 支持嵌套展开与 "$$" 字面量
//  3. ":=" 赋值仅作用于当前展开过程
//  4. 无法识别的表达式保持原样
//
// # 快速开始
//
// 使用当前进程环境：
//
//	expanded, err := templexp.ExpandTemplate(`model: "${LLM_MODEL:-gpt-4}"`)
//
// 使用固定快照（结果不随进程环境变化，适合生成器）：
//
//	exp := templexp.NewExpander([]string{"HOST=db.internal"})
//	url, err := exp.Expand("postgres://${HOST}:${PORT:-5432}/app")
//
// 详见 [Expander] 与 [ExpandTemplate]。
package templexp
