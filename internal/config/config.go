package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"venv-wizard/internal/installer"
)

const configName = "installer"

// Settings 是一次进程运行期间不变的配置值
type Settings struct {
	Root         string
	EnvDir       string   `mapstructure:"env_dir"`
	Manifest     string   `mapstructure:"manifest"`
	MinPython    string   `mapstructure:"min_python"`
	Interpreter  string   `mapstructure:"interpreter"`
	TestCommands []string `mapstructure:"test_commands"`
	Debug        bool     `mapstructure:"debug"`
	Accelerant   struct {
		Module string `mapstructure:"module"`
		Name   string `mapstructure:"name"`
		Hint   string `mapstructure:"hint"`
	} `mapstructure:"accelerant"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env_dir", "venv")
	v.SetDefault("manifest", "requirements.txt")
	v.SetDefault("min_python", "3.8")
	v.SetDefault("interpreter", "")
	v.SetDefault("debug", false)
	v.SetDefault("accelerant.module", "git")
	v.SetDefault("accelerant.name", "GitPython")
	v.SetDefault("accelerant.hint", "80x faster git operations")
	v.SetDefault("test_commands", []string{
		"tests/core/test_memory_context_integration.py",
		"tests/core/test_performance_benchmarks.py",
	})
}

// Load 读取项目根目录下可选的 installer.{yaml,toml,json}；file 非空时只读取该文件
func Load(root, file string) (Settings, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Settings{}, fmt.Errorf("config: resolve root %s: %w", root, err)
	}

	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(absRoot)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 未加引号的 3.10 会被解析为浮点数 3.1
	if _, ok := v.Get("min_python").(string); !ok {
		return Settings{}, fmt.Errorf("config: min_python must be a quoted version, got %v", v.Get("min_python"))
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	s.Root = absRoot
	s.File = v.ConfigFileUsed()

	if !installer.AtLeast(s.MinPython, "0") {
		return Settings{}, fmt.Errorf("config: min_python %q is not a dotted version", s.MinPython)
	}
	return s, nil
}

// Installer 将配置转换为安装器配置
func (s Settings) Installer(goos string) installer.Config {
	return installer.Config{
		Root:        s.Root,
		EnvDir:      s.EnvDir,
		Manifest:    s.Manifest,
		MinVersion:  s.MinPython,
		Interpreter: s.Interpreter,
		Accelerant: installer.Accelerant{
			Module: s.Accelerant.Module,
			Name:   s.Accelerant.Name,
			Hint:   s.Accelerant.Hint,
		},
		TestCommands: s.TestCommands,
		OS:           goos,
	}
}
