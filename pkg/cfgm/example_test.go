// Author: lwmacct (https://github.com/lwmacct)
package cfgm_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lwmacct/251218-go-pkg-confgen/pkg/cfgm"
)

// Example_defaultPaths 演示 DefaultPaths 的搜索顺序。
func Example_defaultPaths() {
	for _, p := range cfgm.DefaultPaths("confgen") {
		fmt.Println(filepath.ToSlash(p))
	}

	// Output:
	// .confgen.yaml
	// config/confgen.yaml
}

// Example_load 演示设置文件不存在时使用默认值。
func Example_load() {
	type Settings struct {
		Package string `json:"package"`
		Output  string `json:"output"`
	}

	cfg, err := cfgm.Load(Settings{Package: "config", Output: "config_gen.go"},
		cfgm.WithConfigPaths("nonexistent.yaml"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Package:", cfg.Package)
	fmt.Println("Output:", cfg.Output)

	// Output:
	// Package: config
	// Output: config_gen.go
}

// Example_load_withEnvPrefix 演示通过环境变量覆盖设置。
func Example_load_withEnvPrefix() {
	type Settings struct {
		Package string `json:"package"`
		OutDir  string `json:"out-dir"`
	}

	cfg, err := cfgm.Load(Settings{Package: "config"},
		cfgm.WithConfigPaths("nonexistent.yaml"),
		cfgm.WithEnvPrefix("CONFGEN_"),
		cfgm.WithEnviron([]string{"CONFGEN_OUT_DIR=internal/gen"}),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Package:", cfg.Package)
	fmt.Println("OutDir:", cfg.OutDir)

	// Output:
	// Package: config
	// OutDir: internal/gen
}

// Example_load_withJSONConfig 演示根据 .json 扩展名使用 JSON 解析器。
func Example_load_withJSONConfig() {
	type Settings struct {
		Package string `json:"package"`
		Type    string `json:"type"`
	}

	dir, err := os.MkdirTemp("", "cfgm-example-*")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)

		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "confgen.json")
	if err := os.WriteFile(path, []byte(`{"package": "settings"}`), 0o600); err != nil {
		fmt.Println("创建临时文件失败:", err)

		return
	}

	cfg, err := cfgm.Load(Settings{Package: "config", Type: "Config"},
		cfgm.WithConfigPaths(path),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Package:", cfg.Package)
	fmt.Println("Type:", cfg.Type)

	// Output:
	// Package: settings
	// Type: Config
}
