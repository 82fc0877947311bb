package registry

import (
	"errors"
	"strings"
	"testing"
)

func TestStyle(t *testing.T) {
	t.Run("登録済みIDは対応するエントリを返す", func(t *testing.T) {
		s, err := Style(3)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if s.Name != "Cyberpunk" {
			t.Errorf("スタイル名が違う: %s", s.Name)
		}
		if !strings.Contains(s.Clause, "Neon lights") {
			t.Errorf("句が違う: %s", s.Clause)
		}
	})

	t.Run("未登録IDは ErrUnknownStyle", func(t *testing.T) {
		_, err := Style(42)
		if !errors.Is(err, ErrUnknownStyle) {
			t.Fatalf("ErrUnknownStyle を期待したが: %v", err)
		}
	})

	t.Run("デフォルトは ID=1 Ghibli", func(t *testing.T) {
		s := DefaultStyle()
		if s.ID != DefaultStyleID || s.Name != "Ghibli" {
			t.Errorf("デフォルトスタイルが違う: %+v", s)
		}
	})
}

func TestCamera(t *testing.T) {
	t.Run("登録済みタグは対応するエントリを返す", func(t *testing.T) {
		c, err := Camera(CameraLow)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if !strings.Contains(c.Clause, "low angle") {
			t.Errorf("句が違う: %s", c.Clause)
		}
	})

	t.Run("未登録タグは ErrUnknownCamera", func(t *testing.T) {
		_, err := Camera(CameraTag("DRONE"))
		if !errors.Is(err, ErrUnknownCamera) {
			t.Fatalf("ErrUnknownCamera を期待したが: %v", err)
		}
	})

	t.Run("デフォルトは MED", func(t *testing.T) {
		if DefaultCamera().Tag != CameraMed {
			t.Errorf("デフォルトカメラが違う: %+v", DefaultCamera())
		}
	})
}

func TestSceneConstants(t *testing.T) {
	t.Run("バイブル定数は欠けてはいけない", func(t *testing.T) {
		for name, v := range map[string]string{
			"actor":         Scene.Actor,
			"set":           Scene.Set,
			"color":         Scene.Color,
			"hard_negative": Scene.HardNegative,
		} {
			if v == "" {
				t.Errorf("%s が空になっている", name)
			}
		}
	})

	t.Run("舞台は円形建築とランタンを強制する", func(t *testing.T) {
		if !strings.Contains(Scene.Set, "CIRCULAR") {
			t.Error("セット句に CIRCULAR が含まれていない")
		}
		if !strings.Contains(Scene.Set, "red paper lanterns") {
			t.Error("セット句に red paper lanterns が含まれていない")
		}
	})
}

func TestRegistrySnapshots(t *testing.T) {
	t.Run("Styles のコピーを書き換えても本体は不変", func(t *testing.T) {
		snap := Styles()
		snap[0].Name = "mutated"
		if DefaultStyle().Name != "Ghibli" {
			t.Error("レジストリ本体が書き換えられてしまった")
		}
	})

	t.Run("カメラは4種そろっている", func(t *testing.T) {
		if len(Cameras()) != 4 {
			t.Errorf("カメラ数が違う: %d", len(Cameras()))
		}
	})
}
