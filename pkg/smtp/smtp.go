package smtp

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/openclub/lendhub/pkg/logger"
)

// Client sends workflow notification mail. Sending is best-effort: failures
// are logged, never returned to the workflow.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

func NewClient(dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
		domain: domain,
	}
}

// SendApprovalRequest notifies a club's approvers that a borrowing
// transaction awaits their decision.
func (c *Client) SendApprovalRequest(to []string, itemName, borrowerName string) {
	msg := gomail.NewMessage()

	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", strings.Join(to, ", "))
	msg.SetHeader("Subject", fmt.Sprintf("Approval needed: %s", itemName))
	msg.SetBody("text/plain", fmt.Sprintf("%s requested %q. A decision is pending in the approval queue.", borrowerName, itemName))

	if err := c.dialer.DialAndSend(msg); err != nil {
		logger.Log.Errorf("failed to send approval request mail: %v", err)
		return
	}
	logger.Log.Debugf("approval request mail sent for %q", itemName)
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
