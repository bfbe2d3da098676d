package breakout

type Vector struct {
	X float64
	Y float64
}

// Extents are the half-extents of an instance around its centre.
type Extents struct {
	X1 float64
	X2 float64
	Y1 float64
	Y2 float64
}

func ExtentsOf(width, height float64) Extents {
	return Extents{
		X1: -0.5 * width,
		X2: 0.5 * width,
		Y1: -0.5 * height,
		Y2: 0.5 * height,
	}
}

// Scaled multiplies the extents by an instance scale.
func (e Extents) Scaled(scale Vector) Extents {
	return Extents{
		X1: e.X1 * scale.X,
		X2: e.X2 * scale.X,
		Y1: e.Y1 * scale.Y,
		Y2: e.Y2 * scale.Y,
	}
}

func (e Extents) Width() float64  { return e.X2 - e.X1 }
func (e Extents) Height() float64 { return e.Y2 - e.Y1 }

// At returns the world-space box of the shape centred at pos.
func (e Extents) At(pos Vector) Rect {
	return Rect{
		Left:   pos.X + e.X1,
		Right:  pos.X + e.X2,
		Bottom: pos.Y + e.Y1,
		Top:    pos.Y + e.Y2,
	}
}

type Ball struct {
	Shape Extents
	Pos   Vector
	Vel   Vector
}

func (b Ball) Box() Rect { return b.Shape.At(b.Pos) }

type Paddle struct {
	Shape Extents
	Pos   Vector
	Speed float64
}

func (p Paddle) Box() Rect { return p.Shape.At(p.Pos) }

// Block is drawn with Shape but collides with Hit, the shape multiplied
// by the instance scale once more. With the default scale a 3.5x1 block
// collides as 12.25x1, so neighbouring hit boxes overlap.
type Block struct {
	Shape   Extents
	Hit     Extents
	Pos     Vector
	Visible bool
}

func (b Block) Box() Rect { return b.Hit.At(b.Pos) }

// Bounds of the playfield in world units. Fixed once the canvas aspect is known.
type Bounds struct {
	Bottom float64
	Upper  float64
	Left   float64
	Right  float64
}

func BoundsForAspect(aspect float64) Bounds {
	b := Bounds{Bottom: -5, Upper: 5}
	b.Left = b.Bottom * aspect
	b.Right = b.Upper * aspect
	return b
}

func (b Bounds) Width() float64  { return b.Right - b.Left }
func (b Bounds) Height() float64 { return b.Upper - b.Bottom }

type GameState struct {
	Ball    Ball
	Paddle  Paddle
	Blocks  []Block
	Strikes int
	Phase   Phase
	Paused  bool
}

func (g *GameState) VisibleBlocks() int {
	n := 0
	for i := range g.Blocks {
		if g.Blocks[i].Visible {
			n++
		}
	}
	return n
}
