package platform

import (
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	Windows = "windows"
	MacOS   = "darwin"
	Linux   = "linux"
)

// Paths 描述某个平台上的解释器与虚拟环境布局
type Paths struct {
	OS              string
	Interpreter     string
	EnvDir          string
	BinDir          string
	Activate        string
	EnvPython       string
	EnvPip          string
	Deactivate      string
	TestInterpreter string
}

// Detect 返回当前进程所在的操作系统
func Detect() string {
	return runtime.GOOS
}

// Name 返回操作系统的显示名称
func Name(goos string) string {
	switch goos {
	case Windows:
		return "Windows"
	case MacOS:
		return "macOS"
	case Linux:
		return "Linux"
	}
	return goos
}

// Resolve 根据操作系统名称计算解释器名称、激活命令以及虚拟环境内的可执行文件路径。
// 未知的操作系统一律按 Unix 约定处理。
func Resolve(goos, envDir string) Paths {
	if goos == Windows {
		bin := winJoin(envDir, "Scripts")
		return Paths{
			OS:              goos,
			Interpreter:     "python",
			EnvDir:          envDir,
			BinDir:          bin,
			Activate:        winJoin(bin, "activate.bat"),
			EnvPython:       winJoin(bin, "python.exe"),
			EnvPip:          winJoin(bin, "pip.exe"),
			Deactivate:      "deactivate",
			TestInterpreter: "python",
		}
	}

	bin := unixJoin(envDir, "bin")
	return Paths{
		OS:              goos,
		Interpreter:     "python3",
		EnvDir:          envDir,
		BinDir:          bin,
		Activate:        "source " + unixJoin(bin, "activate"),
		EnvPython:       unixJoin(bin, "python"),
		EnvPip:          unixJoin(bin, "pip"),
		Deactivate:      "deactivate",
		TestInterpreter: "python3",
	}
}

func winJoin(elem ...string) string {
	for i, e := range elem {
		elem[i] = strings.ReplaceAll(e, `\`, "/")
	}
	return strings.ReplaceAll(path.Join(elem...), "/", `\`)
}

func unixJoin(elem ...string) string {
	for i, e := range elem {
		elem[i] = filepath.ToSlash(e)
	}
	return path.Join(elem...)
}
