// Package config 定义 confgen 自身的运行设置。
//
// 设置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 设置文件 - .confgen.yaml / config/confgen.yaml
//  3. 环境变量 - CONFGEN_ 前缀
//  4. CLI flags（含 OUT_DIR、GOPACKAGE、GOFILE 等宿主环境变量来源）
package config

import (
	"github.com/lwmacct/251218-go-pkg-confgen/pkg/confgen"
)

// Config 生成器设置。
type Config struct {
	Config        string `json:"config" desc:"配置源文件路径" validate:"required"`
	Format        string `json:"format" desc:"配置源格式 (yaml/json/toml/hcl/env)，为空按扩展名推断" validate:"omitempty,oneof=yaml yml json toml hcl env dotenv"`
	OutDir        string `json:"out-dir" desc:"生成文件的输出目录，由宿主构建系统提供"`
	Output        string `json:"output" desc:"生成文件名" validate:"required,endswith=.go,excludes=/"`
	Package       string `json:"package" desc:"生成文件的包名" validate:"required,goident"`
	Type          string `json:"type" desc:"聚合结构体类型名" validate:"required,goexported"`
	Constructor   string `json:"constructor" desc:"构造函数名" validate:"required,goexported,nefield=Type"`
	Generator     string `json:"generator" desc:"生成器位置，写入头部并作为重建触发依赖"`
	Depfile       string `json:"depfile" desc:"Make 风格依赖文件路径，为空不写"`
	TriggerPrefix string `json:"trigger-prefix" desc:"重建触发声明行前缀"`
	ExpandEnv     bool   `json:"expand-env" desc:"对配置值执行 ${VAR} 展开"`
}

// DefaultConfig 返回默认设置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Config:        "config.yaml",
		Output:        confgen.DefaultFilename,
		Package:       confgen.DefaultPackage,
		Type:          confgen.DefaultTypeName,
		Constructor:   confgen.DefaultConstructor,
		TriggerPrefix: confgen.DefaultTriggerPrefix,
	}
}

// Options 将设置转换为生成器选项。
func (c *Config) Options() (confgen.Options, error) {
	format, err := confgen.ParseFormat(c.Format)
	if err != nil {
		return confgen.Options{}, err
	}

	return confgen.Options{
		ConfigPath:    c.Config,
		Format:        format,
		OutDir:        c.OutDir,
		Filename:      c.Output,
		GeneratorPath: c.Generator,
		Package:       c.Package,
		TypeName:      c.Type,
		Constructor:   c.Constructor,
		Depfile:       c.Depfile,
		TriggerPrefix: c.TriggerPrefix,
		ExpandEnv:     c.ExpandEnv,
	}, nil
}
