package main

import "time"

type config struct {
	BaseURL       string `mapstructure:"base_url"`
	ChannelSecret string `mapstructure:"channel_secret"`
	Destination   string `mapstructure:"destination"`
	UserID        string `mapstructure:"user_id"`
	GroupID       string `mapstructure:"group_id"`
	Interval      string `mapstructure:"interval"`
	Count         int    `mapstructure:"count"`

	Every time.Duration `mapstructure:"-"`
}
