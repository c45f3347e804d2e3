package renderer

// FillCall is a recorded FillCircle.
type FillCall struct {
	X, Y, R  float64
	Gradient Gradient
}

// StrokeCall is a recorded StrokeQuadratic.
type StrokeCall struct {
	X0, Y0, CX, CY, X1, Y1 float64
	Width                  float64
	Paint                  Paint
}

// Recorder is a Canvas that keeps the calls of the current frame in memory
// and running totals across frames. Headless runs draw into it.
type Recorder struct {
	BackingW, BackingH int
	DisplayW, DisplayH float64
	Scale              float64

	Frames  int
	Clears  int
	Fills   []FillCall
	Strokes []StrokeCall

	TotalFills   int
	TotalStrokes int
	Unbalanced   int // Begin without End, or End without Begin

	open bool
}

// NewRecorder creates an empty recorder with unit scale.
func NewRecorder() *Recorder {
	return &Recorder{Scale: 1}
}

func (r *Recorder) Resize(backingW, backingH int, displayW, displayH float64) {
	r.BackingW, r.BackingH = backingW, backingH
	r.DisplayW, r.DisplayH = displayW, displayH
}

func (r *Recorder) SetScale(s float64) {
	r.Scale = s
}

// Begin starts a frame and forgets the previous frame's calls.
func (r *Recorder) Begin() {
	if r.open {
		r.Unbalanced++
	}
	r.open = true
	r.Fills = r.Fills[:0]
	r.Strokes = r.Strokes[:0]
}

func (r *Recorder) End() {
	if !r.open {
		r.Unbalanced++
	}
	r.open = false
	r.Frames++
}

func (r *Recorder) Clear(width, height float64) {
	r.Clears++
}

func (r *Recorder) FillCircle(x, y, radius float64, g Gradient) {
	// Callers reuse their stop buffers
	g.Stops = append([]GradientStop(nil), g.Stops...)
	r.Fills = append(r.Fills, FillCall{X: x, Y: y, R: radius, Gradient: g})
	r.TotalFills++
}

func (r *Recorder) StrokeQuadratic(x0, y0, cx, cy, x1, y1, width float64, p Paint) {
	r.Strokes = append(r.Strokes, StrokeCall{X0: x0, Y0: y0, CX: cx, CY: cy, X1: x1, Y1: y1, Width: width, Paint: p})
	r.TotalStrokes++
}

// DrawCalls returns the total number of fill and stroke calls recorded.
func (r *Recorder) DrawCalls() int {
	return r.TotalFills + r.TotalStrokes
}
