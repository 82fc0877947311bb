package domain

import (
	"encoding/json"
	"testing"
)

func TestCompiledShot_JSON(t *testing.T) {
	t.Run("AIからの応答スキーマをそのままパースできるのだ", func(t *testing.T) {
		inputJSON := `{
			"meta": {
				"user_language": "CN",
				"style_state": { "id": 1, "name": "Ghibli" }
			},
			"director_log": "镜头1：雨中的特写。",
			"prompt_data": {
				"positive_prompt": "Studio Ghibli style, close-up shot, a young girl in a red hanfu, crying in the rain",
				"negative_prompt": "(text:2.0), (watermark:2.0)",
				"aspect_ratio": "16:9"
			}
		}`

		var shot CompiledShot
		if err := json.Unmarshal([]byte(inputJSON), &shot); err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}

		if shot.Meta.UserLanguage != "CN" {
			t.Errorf("user_language が違う: %s", shot.Meta.UserLanguage)
		}
		if shot.Meta.StyleState.ID != 1 || shot.Meta.StyleState.Name != "Ghibli" {
			t.Errorf("style_state が違う: %+v", shot.Meta.StyleState)
		}
		if shot.PromptData.AspectRatio != AspectRatio {
			t.Errorf("aspect_ratio が違う: %s", shot.PromptData.AspectRatio)
		}
		if shot.DirectorLog == "" {
			t.Error("director_log が空になっている")
		}
	})
}
