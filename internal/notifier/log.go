package notifier

import (
	"context"
	"log"
	"os"
)

// LogNotifier 仅打印邮件内容，适合开发阶段使用。
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier 创建日志通知器，未提供 logger 时默认输出到标准输出。
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.New(os.Stdout, "[notify] ", log.LstdFlags)
	}
	return &LogNotifier{logger: logger}
}

// Notify 打印询价邮件的收件人与主题，不实际发送。
func (n LogNotifier) Notify(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return nil
	}
	n.logger.Printf("proposal email to=%s subject=%q (%d bytes)", to, subject, len(body))
	return nil
}
