package cfgm

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/pkg/templexp"
)

// DefaultPaths 返回默认设置文件的搜索顺序。
//
// 只在工作目录内查找，不读取用户主目录或 /etc，保证构建结果可复现。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml
//  2. ./config/appname.yaml
func DefaultPaths(appName string) []string {
	if appName == "" {
		return nil
	}

	return []string{"." + appName + ".yaml", filepath.Join("config", appName+".yaml")}
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
// 配置文件按顺序查找，命中首个文件即停止；文件中的未知 key 记录警告，
// 使用 [WithStrictKeys] 时返回错误。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}
	if len(options.configPaths) == 0 {
		options.configPaths = DefaultPaths(options.appName)
	}
	if options.environ == nil {
		options.environ = os.Environ()
	}

	configMap := structToMap(defaultConfig)
	knownKeys := collectConfigKeys(defaultConfig)

	// 2️⃣ 配置文件
	for _, path := range options.resolvedPaths() {
		fileMap, found, err := options.readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		for _, key := range flattenMapKeys(fileMap) {
			if slices.Contains(knownKeys, key) {
				continue
			}
			if options.strictKeys {
				return nil, fmt.Errorf("config file %s: unknown key %q", path, key)
			}
			slog.Warn("Unknown key in config file", "path", path, "key", key)
		}
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !options.noTemplateExpansion)

		break
	}

	// 3️⃣ 环境变量(前缀)
	if options.envPrefix != "" {
		env := environMap(options.environ)
		for envKey, configPath := range generateEnvBindings(options.envPrefix, knownKeys) {
			if val := env[envKey]; val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// 4️⃣ CLI flags (仅用户显式设置的)
	if options.cmd != nil {
		applyCLIFlags(options.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本，适用于 CLI 场景。
//
// 它会注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

func (o *options) resolvedPaths() []string {
	if o.baseDir == "" {
		return o.configPaths
	}

	paths := make([]string, len(o.configPaths))
	for i, p := range o.configPaths {
		if filepath.IsAbs(p) {
			paths[i] = p
			continue
		}
		paths[i] = filepath.Join(o.baseDir, p)
	}

	return paths
}

// readConfigFile 读取并解析单个设置文件；文件不存在时 found 为 false，其余读取错误直接返回。
func (o *options) readConfigFile(path string) (map[string]any, bool, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		// 路径不存在（含父级不是目录）时尝试下一个路径
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read config file %s: %w", path, err)
	}

	if !o.noTemplateExpansion {
		expanded, err := templexp.NewExpander(o.environ).Expand(string(content))
		if err != nil {
			return nil, false, fmt.Errorf("expand template in %s: %w", path, err)
		}
		content = []byte(expanded)
	}

	fileMap, err := parseConfigBytes(path, content)
	if err != nil {
		return nil, false, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return fileMap, true, nil
}

// collectConfigKeys 收集配置结构体的叶子 key（如 output.dir）。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	walkConfigFields(reflect.TypeOf(defaultConfig), "", func(key string, _ reflect.Type) {
		keys = append(keys, key)
	})

	return keys
}

// walkConfigFields 深度优先遍历带 json tag 的叶子字段。
func walkConfigFields(typ reflect.Type, prefix string, fn func(key string, fieldType reflect.Type)) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}

		if isStructType(field.Type) {
			walkConfigFields(field.Type, key, fn)
			continue
		}
		fn(key, field.Type)
	}
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// 转换规则："." 与 "-" 转为 "_"，转大写，加前缀。
//
// 示例 (前缀 "CONFGEN_")：
//   - out-dir → CONFGEN_OUT_DIR
//   - trigger-prefix → CONFGEN_TRIGGER_PREFIX
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok {
			env[name] = value
		}
	}

	return env
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 json tag 生成，仅替换 "." 为 "-"（server.url → --server-url）。
// 支持 string、bool、int、time.Duration 与 []string。
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	walkConfigFields(typ, prefix, func(key string, fieldType reflect.Type) {
		flag := strings.ReplaceAll(key, ".", "-")
		if !cmd.IsSet(flag) {
			return
		}

		switch {
		case fieldType == durationType:
			setByPath(config, key, cmd.Duration(flag))
		case fieldType.Kind() == reflect.String:
			setByPath(config, key, cmd.String(flag))
		case fieldType.Kind() == reflect.Bool:
			setByPath(config, key, cmd.Bool(flag))
		case fieldType.Kind() == reflect.Int:
			setByPath(config, key, cmd.Int(flag))
		case fieldType.Kind() == reflect.Slice && fieldType.Elem().Kind() == reflect.String:
			setByPath(config, key, cmd.StringSlice(flag))
		default:
			slog.Debug("Unsupported flag type", "flag", flag, "type", fieldType)
		}
	})
}

var durationType = reflect.TypeFor[time.Duration]()
