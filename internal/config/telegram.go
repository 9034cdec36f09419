package config

type TelegramConfig struct {
	ApiToken string `yaml:"token"`
	Owner    int64  `yaml:"owner-id"`
}

func (t *TelegramConfig) Token() string {
	return t.ApiToken
}

// OwnerID is the only chat the bot answers to. Zero disables the check.
func (t *TelegramConfig) OwnerID() int64 {
	return t.Owner
}
