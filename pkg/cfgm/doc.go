// Package cfgm 加载 confgen 自身的运行设置。
//
// 支持 YAML/JSON，按默认值、设置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 设置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	type Settings struct {
//	    Package string `json:"package" desc:"生成文件的包名"`
//	    OutDir  string `json:"out-dir" desc:"输出目录"`
//	}
//
//	cfg, err := cfgm.LoadCmd(cmd, Settings{Package: "config"}, "confgen",
//	    cfgm.WithEnvPrefix("CONFGEN_"),
//	)
//
// # 设置文件路径
//
// [WithAppName] 会生成默认搜索路径（见 [DefaultPaths]），只在工作目录内查找：
//   - .confgen.yaml
//   - config/confgen.yaml
//
// 设置文件中的 ${VAR:-default} 会被展开（见 templexp 包），
// 使用 [WithoutTemplateExpansion] 可禁用。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - out-dir → --out-dir
//   - output.dir → --output-dir
package cfgm
