package util

import (
	"os/exec"
	"runtime"
)

// OpenBrowser 打开默认浏览器
// 本地启动后直接带用户进入仪表盘页面
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// rundll32 在 Windows 7+ 上比 cmd /c start 更稳定
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

// OpenBrowserWithFallback 带降级方案的浏览器打开
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		return exec.Command("explorer", url).Start()
	case "linux":
		for _, browser := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			if err := exec.Command(browser, url).Start(); err == nil {
				return nil
			}
		}
	}

	return err
}
