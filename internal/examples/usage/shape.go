package usage

//go:generate restruct -type Shape

// Shape is a figure.
//
//restruct:view Figure, omit(Point)
type Shape interface{ isShape() }

// Circle is round.
type Circle float64

type Rect struct{ W, H float64 }

type Point struct{}

func (Circle) isShape() {}
func (Rect) isShape()   {}
func (Point) isShape()  {}
