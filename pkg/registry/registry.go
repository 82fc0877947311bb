package registry

import (
	"errors"
	"fmt"
)

// ErrUnknownStyle は、レジストリに存在しないスタイルIDが指定されたときに返されます。
var ErrUnknownStyle = errors.New("registry: unknown style id")

// ErrUnknownCamera は、レジストリに存在しないカメラタグが指定されたときに返されます。
var ErrUnknownCamera = errors.New("registry: unknown camera tag")

// DefaultStyleID は「New Project」リセット時に戻るスタイルIDです。
const DefaultStyleID = 1

// StyleEntry は画風レジストリの1エントリを保持します。
type StyleEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Clause string `json:"clause"`
}

// CameraTag はカメラレジストリの列挙タグです。
type CameraTag string

const (
	CameraWide  CameraTag = "WIDE"
	CameraMed   CameraTag = "MED"
	CameraClose CameraTag = "CLOSE"
	CameraLow   CameraTag = "LOW"
)

// DefaultCameraTag は指示がないときに適用されるカメラタグです。
const DefaultCameraTag = CameraMed

// CameraEntry はカメラレジストリの1エントリを保持します。
type CameraEntry struct {
	Tag    CameraTag `json:"tag"`
	Clause string    `json:"clause"`
}

// SceneConstants は全コンパイル結果へ必ず注入される固定句（ビジュアル・バイブル）です。
// ユーザー指示がこれと衝突しても上書きされることはありません。
type SceneConstants struct {
	Actor        string
	Set          string
	Color        string
	HardNegative string
}

// Scene は本システム唯一の舞台設定（円形土楼の中の赤い漢服の少女）です。
var Scene = SceneConstants{
	Actor: "a young girl in a red hanfu, twin ponytails with red ribbons, black hair",
	Set: "interior of a massive ancient CIRCULAR Tulou building, rainy afternoon, mist, " +
		"(neat rows of red paper lanterns hanging along the curved wooden corridors on every single floor:1.6), " +
		"rhythmic red pattern, (curved architecture:1.5)",
	Color: "dominant red lantern glow, warm interior lights vs cool blue rainy exterior contrast, volumetric fog",
	HardNegative: "(text:2.0), (watermark:2.0), (logo:2.0), (modern architecture:1.8), (square building:1.8), " +
		"(western building:1.8), (missing lanterns:1.6), (distorted architecture:1.5), " +
		"bad anatomy, extra limbs, crop top, messy background",
}

var styles = []StyleEntry{
	{ID: 1, Name: "Ghibli", Clause: "Studio Ghibli style, hand-drawn anime aesthetic, flat color, cel shading, Hayao Miyazaki inspired, vibrant yet nostalgic"},
	{ID: 2, Name: "Cinematic", Clause: "8k, photorealistic, 35mm film, Arri Alexa, cinematic lighting, depth of field, ray tracing, highly detailed texture"},
	{ID: 3, Name: "Cyberpunk", Clause: "Neon lights, high contrast, futuristic, wet surfaces, purple and blue tones, techwear, glow effects"},
	{ID: 4, Name: "Chinese Ink", Clause: "Traditional ink wash painting, watercolor texture, minimalist, negative space (Liu Bai), artistic brushstrokes"},
	{ID: 5, Name: "Pixar 3D", Clause: "Pixar animation style, 3D render, Octane render, cute, soft lighting, high detail, subsurface scattering"},
}

var cameras = []CameraEntry{
	{Tag: CameraWide, Clause: "wide angle establishing shot, full environment view"},
	{Tag: CameraMed, Clause: "medium shot, waist up, balanced character and environment"},
	{Tag: CameraClose, Clause: "close-up shot, focus on face and emotion, shallow depth of field"},
	{Tag: CameraLow, Clause: "low angle shot, looking up, emphasizing the height of the building"},
}

// Style は指定IDのスタイルを返します。存在しないIDには ErrUnknownStyle を返します。
func Style(id int) (StyleEntry, error) {
	for _, s := range styles {
		if s.ID == id {
			return s, nil
		}
	}
	return StyleEntry{}, fmt.Errorf("%w: %d", ErrUnknownStyle, id)
}

// Camera は指定タグのカメラを返します。存在しないタグには ErrUnknownCamera を返します。
func Camera(tag CameraTag) (CameraEntry, error) {
	for _, c := range cameras {
		if c.Tag == tag {
			return c, nil
		}
	}
	return CameraEntry{}, fmt.Errorf("%w: %s", ErrUnknownCamera, tag)
}

// DefaultStyle はデフォルト（リセット先）のスタイルを返します。
func DefaultStyle() StyleEntry {
	s, _ := Style(DefaultStyleID)
	return s
}

// DefaultCamera はデフォルトのカメラを返します。
func DefaultCamera() CameraEntry {
	c, _ := Camera(DefaultCameraTag)
	return c
}

// Styles は全スタイルをID昇順のコピーで返します。カーネル文面の描画に使用します。
func Styles() []StyleEntry {
	out := make([]StyleEntry, len(styles))
	copy(out, styles)
	return out
}

// Cameras は全カメラのコピーを返します。
func Cameras() []CameraEntry {
	out := make([]CameraEntry, len(cameras))
	copy(out, cameras)
	return out
}
