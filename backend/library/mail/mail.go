// Package mail sends account notifications over SMTP.
package mail

import (
	"fmt"
	"sync"

	"pdf-voice/backend/common"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const welcomeSubject = "You are successfully signed up to my project page!"

const welcomeBody = "Hello, %s! Welcome to my project's page where you can upload your PDF files, " +
	"get text from them and listen to an audio files created for you. Enjoy!"

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Notifier delivers mail in the background. A nil *Notifier drops everything.
type Notifier struct {
	sender Sender
	from   string
	wg     sync.WaitGroup
}

func NewNotifier(sender Sender, from string) *Notifier {
	return &Notifier{sender: sender, from: from}
}

// NewSMTPNotifier returns nil when mail credentials are not configured.
func NewSMTPNotifier() *Notifier {
	if !common.MailEnabled() {
		return nil
	}
	from := common.MailDefaultSender
	if from == "" {
		from = common.MailUsername
	}
	d := gomail.NewDialer(common.MailServer, common.MailPort, common.MailUsername, common.MailPassword)
	return NewNotifier(d, from)
}

// SendWelcome greets a freshly registered user. It returns immediately;
// delivery errors are logged and never reach the caller.
func (n *Notifier) SendWelcome(username, email string) {
	if n == nil || email == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", welcomeSubject)
	m.SetBody("text/plain", fmt.Sprintf(welcomeBody, username))

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.sender.DialAndSend(m); err != nil {
			common.Logger().Warn("welcome mail not sent",
				zap.String("username", username),
				zap.Error(err))
		}
	}()
}

// Wait blocks until queued mail has been handed to the server. Used on shutdown.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}
