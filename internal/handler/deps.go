package handler

import (
	"relaychat/internal/app/chat"
	"relaychat/internal/configs"
)

type AppDeps struct {
	Hub    *chat.Hub
	Config *configs.AppConfig
}
