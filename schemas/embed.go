// Package schemas embeds the JSON Schema documents describing nutriplan's data contracts.
package schemas

import _ "embed"

// PlanResponse is the schema of a generated plan as returned by the model.
//
//go:embed plan_response.schema.json
var PlanResponse string

// UserProfile is the schema of a profile file accepted by the CLI and the HTTP API.
//
//go:embed user_profile.schema.json
var UserProfile string
