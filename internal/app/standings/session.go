package standings

import "context"

// OpenLogin shows the password prompt.
func (c *Controller) OpenLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.login.open()
}

// CancelLogin dismisses the password prompt.
func (c *Controller) CancelLogin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login.cancel()
}

// SubmitPassword checks candidate against the admin secret. The prompt closes
// only on success; a wrong password keeps it open for another attempt.
func (c *Controller) SubmitPassword(ctx context.Context, candidate string) bool {
	c.mu.Lock()
	c.login.open()
	if err := c.login.begin(); err != nil {
		c.mu.Unlock()
		return false
	}
	ok := c.session.SubmitPassword(candidate)
	c.login.settle(ok)
	c.mu.Unlock()

	if ok {
		c.notifier.Notify(ctx, success(msgLoginOK))
	} else {
		c.notifier.Notify(ctx, failure(msgLoginFailed, nil))
	}
	return ok
}

// Logout leaves admin mode and drops any half-finished admin dialogs.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.session.Logout()
	if c.create.state != DialogSubmitting {
		c.create.state = DialogClosed
	}
	if c.edit.state != DialogSubmitting {
		c.edit.state = DialogClosed
		c.selection = nil
	}
	c.mu.Unlock()

	c.notifier.Notify(ctx, Notification{Title: titleLogout, Message: msgLogout, Level: LevelInfo})
}
