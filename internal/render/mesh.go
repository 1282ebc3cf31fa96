package render

// floatsPerVertex x, y, z, u, v, r, g, b
const floatsPerVertex = 8

// Mesh неизменяемый набор квадов слоя чанка в чередующемся формате
// x, y, z, u, v, r, g, b. Каждые четыре вершины образуют квад.
type Mesh struct {
	Vertices []float32
}

// VertexCount возвращает число вершин
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices) / floatsPerVertex
}

// QuadCount возвращает число квадов
func (m *Mesh) QuadCount() int {
	return m.VertexCount() / 4
}

// Vertex возвращает i-ю вершину
func (m *Mesh) Vertex(i int) Vertex {
	v := m.Vertices[i*floatsPerVertex : (i+1)*floatsPerVertex]
	return Vertex{X: v[0], Y: v[1], Z: v[2], U: v[3], V: v[4], R: v[5], G: v[6], B: v[7]}
}

// Vertex одна вершина меша
type Vertex struct {
	X, Y, Z float32
	U, V    float32
	R, G, B float32
}

// MeshSink принимает готовые меши слоёв для отрисовки.
// Реализация (графический слой) находится вне движка.
type MeshSink interface {
	Submit(layer int, mesh *Mesh)
}

// MeshSinkFunc адаптирует функцию к MeshSink
type MeshSinkFunc func(layer int, mesh *Mesh)

// Submit реализует MeshSink
func (f MeshSinkFunc) Submit(layer int, mesh *Mesh) {
	f(layer, mesh)
}

// Tessellator накапливает вершины с текущим цветом
type Tessellator struct {
	buf     []float32
	r, g, b float32
}

// NewTessellator создаёт пустой тесселятор с белым цветом
func NewTessellator() *Tessellator {
	return &Tessellator{r: 1, g: 1, b: 1}
}

// Color задаёт цвет следующих вершин
func (t *Tessellator) Color(r, g, b float32) {
	t.r, t.g, t.b = r, g, b
}

// VertexUV добавляет вершину с текстурными координатами
func (t *Tessellator) VertexUV(x, y, z, u, v float32) {
	t.buf = append(t.buf, x, y, z, u, v, t.r, t.g, t.b)
}

// Flush возвращает накопленный меш и очищает буфер
func (t *Tessellator) Flush() *Mesh {
	m := &Mesh{Vertices: make([]float32, len(t.buf))}
	copy(m.Vertices, t.buf)
	t.buf = t.buf[:0]
	t.r, t.g, t.b = 1, 1, 1
	return m
}
