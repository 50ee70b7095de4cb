package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"arbitragescout/internal/config"
	"arbitragescout/internal/model"
	"arbitragescout/internal/search"
)

// EmailNotifier 实现邮件降价提醒。
type EmailNotifier struct {
	cfg    *config.EmailConfig
	logger *slog.Logger
}

// NewEmailNotifier 创建邮件通知器。
func NewEmailNotifier(cfg *config.EmailConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPriceDrop 发送降价提醒邮件。
//
// 邮件配置不完整或收件人为空时静默跳过，不算错误，
// 行情刷新不应因为没配 SMTP 而失败。
func (n *EmailNotifier) SendPriceDrop(ctx context.Context, entry model.WatchlistEntry, toEmail string) error {
	if n.cfg.SMTPHost == "" || n.cfg.SMTPUser == "" || n.cfg.FromEmail == "" {
		n.logger.Warn("email config missing, skip notification")
		return nil
	}
	if strings.TrimSpace(toEmail) == "" {
		n.logger.Warn("email recipient empty, skip notification")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.FromEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "[ArbitrageScout] 📉 Price Drop Alert")
	m.SetBody("text/html", n.buildHTMLBody(entry))

	d := gomail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("price drop notification sent",
		slog.String("to", toEmail),
		slog.String("asin", entry.ASIN))
	return nil
}

func (n *EmailNotifier) buildHTMLBody(entry model.WatchlistEntry) string {
	symbol := search.CurrencySymbol(entry.Currency)
	priceLine := fmt.Sprintf("%s%.2f → %s%.2f 📉", symbol, entry.TrackedPrice, symbol, entry.Price)

	template := `
<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8" />
<style>
  body { font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937; }
  .card { max-width: 600px; margin: 24px auto; background: #ffffff; border-radius: 12px; overflow: hidden; border: 1px solid #e5e7eb; }
  .header { background: #0f172a; color: #ffffff; padding: 16px 20px; font-size: 16px; font-weight: bold; }
  .content { padding: 20px; }
  .hero img { width: 100%%; max-width: 520px; display: block; margin: 0 auto 16px; border-radius: 8px; }
  .price { font-size: 26px; font-weight: bold; color: #22c55e; margin: 8px 0 12px; }
  .title { font-size: 16px; margin-bottom: 16px; }
  .cta { display: inline-block; padding: 12px 20px; background: #f59e0b; color: #fff; text-decoration: none; border-radius: 8px; font-weight: bold; }
  .footer { margin-top: 20px; font-size: 12px; color: #6b7280; }
</style>
</head>
<body>
  <div class="card">
    <div class="header">[ArbitrageScout] 📉 Price Drop Alert</div>
    <div class="content">
      <div class="hero"><img src="%s" alt="Product Image" /></div>
      <div class="price">%s</div>
      <div class="title">%s</div>
      <div style="text-align:center; margin-bottom: 12px;">
        <a class="cta" href="%s" target="_blank">View Listing</a>
      </div>
      <div class="footer">Tracked since you saved it to your watchlist.</div>
    </div>
  </div>
</body>
</html>`

	return fmt.Sprintf(template, entry.ImageURL, priceLine, entry.Title, entry.ProductURL)
}
