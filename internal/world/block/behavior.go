package block

import "math/rand"

// Shape определяет геометрию, которую блок отдаёт в меш чанка
type Shape uint8

const (
	ShapeNone  Shape = iota // ничего не рисуется (воздух)
	ShapeCube               // шесть граней куба
	ShapeCross              // два скрещенных квада (растения)
)

// TickFunc правило случайного тика для типа блока
type TickFunc func(api TickAPI, x, y, z int, rng *rand.Rand)

// Type описывает поведение блока как данные таблицы.
// Новый тип блока добавляется новой записью, а не новым типом Go.
type Type struct {
	ID          BlockID
	Name        string
	Solid       bool // участвует в коллизиях и выборе
	BlocksLight bool // перекрывает солнечный свет в колонке
	Shape       Shape

	// TextureID слот в атласе 16x16, используемый для всех граней
	TextureID int
	// FaceTexture переопределяет слот для отдельных граней (0..5)
	FaceTexture func(face int) int

	// OnTick вызывается при случайном тике; nil - блок не тикает
	OnTick TickFunc
}

// Texture возвращает слот атласа для грани
func (t *Type) Texture(face int) int {
	if t.FaceTexture != nil {
		return t.FaceTexture(face)
	}
	return t.TextureID
}

// NeedsTick возвращает true, если у блока есть правило тика
func (t *Type) NeedsTick() bool {
	return t.OnTick != nil
}
