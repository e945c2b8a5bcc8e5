package example

// Shape demonstrates a closed union of geometric variants: the
// package-level types implementing its marker method are the variants.
//
//go:generate go-kindgen
type Shape interface {
	isShape()
}

// Circle is a circle's radius.
type Circle float64

func (Circle) isShape() {}

// Square is a square's side length.
type Square float64

func (Square) isShape() {}

// Origin is the coordinate origin. It carries no payload.
type Origin struct{}

func (Origin) isShape() {}

// Label is held by pointer, so its payload can be rewritten in place.
type Label struct {
	Text string
}

func (*Label) isShape() {}

// Rect carries two fields, so it only takes part in the kind enum and
// gets a predicate.
type Rect struct {
	W, H float64
}

func (Rect) isShape() {}

// direction demonstrates an unexported union with unit variants.
//
//go:generate go-kindgen
type direction interface {
	direction()
}

// North points up.
type North struct{}

func (North) direction() {}

type South struct{} // due south

func (South) direction() {}
