package main

import (
	"net/http"

	"detergent/config"
	"detergent/respond"

	"go.uber.org/zap"
)

// ConfigHandler serves the settings screen. GET shows the config without the demo password;
// POST validates and saves it.
func ConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			respond.JSON(w, http.StatusOK, config.GetConfig().Redacted())
		case http.MethodPost:
			var newCfg config.Config
			if err := respond.Decode(r, &newCfg); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := config.SaveConfig(newCfg); err != nil {
				respond.Error(w, r, err)
				return
			}
			zap.L().Info("config saved", zap.String("path", config.Path()))
			respond.JSON(w, http.StatusOK, map[string]interface{}{
				"message": "settings saved",
				"config":  config.GetConfig().Redacted(),
			})
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}
