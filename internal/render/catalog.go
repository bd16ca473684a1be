package render

import (
	"github.com/silasgubi/painel/internal/config"
	"github.com/silasgubi/painel/internal/model"
)

// Catalog resolves the configured control entries into the static button
// catalog. Controls without an explicit URL get one derived from the webhook
// base and the maker key; the generator itself never calls these URLs.
func Catalog(controls []config.ControlConfig, webhook config.WebhookConfig, key string) []model.Control {
	out := make([]model.Control, 0, len(controls))
	for _, c := range controls {
		url := c.URL
		if url == "" {
			url = webhook.BaseURL + "/" + c.Event + "/with/key/" + key
		}
		out = append(out, model.Control{
			ID:     c.ID,
			Label:  c.Label,
			Icon:   c.Icon,
			Group:  model.ControlGroup(c.Group),
			Action: model.ControlAction(c.Action),
			URL:    url,
		})
	}
	return out
}
