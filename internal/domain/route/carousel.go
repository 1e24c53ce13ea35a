package route

// Carousel is a cursor into the pair sequence. It saturates at both ends.
type Carousel struct {
	index int
	size  int
}

// Index returns the current cursor position.
func (c Carousel) Index() int { return c.index }

// Size returns the number of pairs the cursor ranges over.
func (c Carousel) Size() int { return c.size }

// Resize sets the sequence length and re-clamps the cursor.
func (c *Carousel) Resize(size int) {
	if size < 0 {
		size = 0
	}
	c.size = size
	c.clamp()
}

// Next advances by one unless already at the last pair.
func (c *Carousel) Next() {
	c.index++
	c.clamp()
}

// Previous steps back by one unless already at the first pair.
func (c *Carousel) Previous() {
	c.index--
	c.clamp()
}

// HasPrevious reports whether Previous would move the cursor.
func (c Carousel) HasPrevious() bool { return c.index > 0 }

// HasNext reports whether Next would move the cursor.
func (c Carousel) HasNext() bool { return c.index < c.size-1 }

func (c *Carousel) clamp() {
	if c.index > c.size-1 {
		c.index = c.size - 1
	}
	if c.index < 0 {
		c.index = 0
	}
}
