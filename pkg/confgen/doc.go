// Package confgen 在编译前把扁平的 key → 字符串配置文件生成为 Go 常量。
//
// 生成文件包含：
//   - 一个聚合结构体，每个配置项一个导出的 string 字段
//   - 一个构造函数，返回由常量填充的结构体值
//   - 每个配置项一个独立的导出常量
//
// 运行期无需解析配置文件，调用方可直接引用编译期常量，
// 或在程序启动时调用构造函数得到一个值并显式传递给各组件。
//
// # 流程
//
//  1. [Load] 读取并解析配置源（YAML/JSON/TOML/HCL/dotenv）
//  2. [Flatten] 校验形状并用 [NormalizeKey] 归一化 key
//  3. [Render] 渲染源码（gofmt 格式，无时间戳）
//  4. [Write] 原子写入宿主提供的输出目录
//  5. [EmitRebuildTriggers] 声明配置源与生成器变化时需要重新生成
//
// [Generator] 把上述步骤串成一次同步调用。
//
// # 快速开始
//
// 在目标包中加入 go:generate 指令：
//
//	//go:generate go run github.com/lwmacct/251218-go-pkg-confgen/cmd/confgen --config config.yaml --out-dir .
//
// config.yaml：
//
//	ServerPort: "8080"
//	LogLevel: info
//
// 生成 config_gen.go：
//
//	type Config struct {
//	    ServerPort string `json:"server_port"`
//	    LogLevel   string `json:"log_level"`
//	}
//
//	func Default() Config { ... }
//
//	const (
//	    ServerPort = "8080"
//	    LogLevel   = "info"
//	)
//
// # 错误
//
// 校验与 I/O 失败均为 [*Error]，类别通过 errors.Is 判断：
// [ErrSourceUnavailable]、[ErrMalformedDocument]、[ErrUnexpectedShape]、
// [ErrUnsupportedValueType]、[ErrDuplicateIdentifier]、[ErrInvalidIdentifier]、
// [ErrReservedIdentifier]、[ErrWriteFailure]、[ErrMissingEnvironment]。
// 任何错误都会中止整次生成，不写出部分文件。
package confgen
