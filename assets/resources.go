package assets

import (
	_ "embed"
)

// IconSVG 窗口与标题栏使用的应用图标
//
//go:embed icon.svg
var IconSVG []byte
