// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

// Package api contains the health check handlers for liveness and readiness probes.
package api

import (
	"net/http"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/respond"
)

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
//
// The mock gateway holds all state in memory, so readiness has no external
// dependencies to probe; both endpoints report process liveness.
func NewHealthHandlers() (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}
	readiness = func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]any{
			"status": "ready",
			"checks": []any{},
		})
	}
	return liveness, readiness
}
