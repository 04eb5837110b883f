package handler

import (
	"github.com/ashwinyue/next-blog/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth   *AuthHandler
	Post   *PostHandler
	FAQ    *FAQHandler
	System *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services, pinger Pinger) *Handlers {
	return &Handlers{
		Auth:   NewAuthHandler(svc),
		Post:   NewPostHandler(svc),
		FAQ:    NewFAQHandler(svc),
		System: NewSystemHandler(svc, pinger),
	}
}
