package notify

import (
	"os/exec"
	"runtime"

	"github.com/billmal071/hcq/internal/config"
)

// Notification types
const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeInfo    = "info"
)

// Send sends a desktop notification if enabled in config
func Send(title, message, notifyType string) {
	if !config.Get().Notifications.Enabled {
		return
	}

	// Send notification in background
	go sendNotification(title, message, notifyType)
}

// BookAdded sends a notification after a successful library mutation
func BookAdded(title, statusLabel string) {
	Send("Added to "+statusLabel, title, TypeSuccess)
}

// AddFailed sends a notification after a failed library mutation
func AddFailed(title, reason string) {
	msg := title
	if reason != "" {
		msg += ": " + reason
	}
	Send("Error Adding Book", msg, TypeError)
}

func sendNotification(title, message, notifyType string) {
	switch runtime.GOOS {
	case "linux":
		sendLinuxNotification(title, message, notifyType)
	case "darwin":
		sendMacNotification(title, message)
	case "windows":
		sendWindowsNotification(title, message)
	}
}

func sendLinuxNotification(title, message, notifyType string) {
	// Try notify-send (most common on Linux)
	icon := "dialog-information"
	switch notifyType {
	case TypeSuccess:
		icon = "dialog-ok"
	case TypeError:
		icon = "dialog-error"
	}

	cmd := exec.Command("notify-send", "-i", icon, "-a", "hcq", title, message)
	cmd.Run()
}

func sendMacNotification(title, message string) {
	script := `display notification "` + escapeAppleScript(message) + `" with title "` + escapeAppleScript(title) + `"`
	cmd := exec.Command("osascript", "-e", script)
	cmd.Run()
}

func sendWindowsNotification(title, message string) {
	// Use PowerShell for Windows notifications
	script := `
	[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
	[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
	$template = '<toast><visual><binding template="ToastText02"><text id="1">` + escapeXML(title) + `</text><text id="2">` + escapeXML(message) + `</text></binding></visual></toast>'
	$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
	$xml.LoadXml($template)
	$toast = [Windows.UI.Notifications.ToastNotification]::new($xml)
	[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("hcq").Show($toast)
	`
	cmd := exec.Command("powershell", "-Command", script)
	cmd.Run()
}

func escapeAppleScript(s string) string {
	// Escape backslashes and double quotes for AppleScript
	result := ""
	for _, c := range s {
		if c == '\\' || c == '"' {
			result += "\\"
		}
		result += string(c)
	}
	return result
}

func escapeXML(s string) string {
	replacements := map[rune]string{
		'&':  "&amp;",
		'<':  "&lt;",
		'>':  "&gt;",
		'"':  "&quot;",
		'\'': "&apos;",
	}
	result := ""
	for _, c := range s {
		if rep, ok := replacements[c]; ok {
			result += rep
		} else {
			result += string(c)
		}
	}
	return result
}
