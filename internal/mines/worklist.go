package mines

// celltodo is an intrusive FIFO worklist over cell indices: next[i]
// holds the index queued after i. Each cell can sit in the list at
// most once, which is exactly what the flood reveal needs.
type celltodo struct {
	next       []int
	head, tail int
}

func newCelltodo(cells int) *celltodo {
	return &celltodo{next: make([]int, cells), head: -1, tail: -1}
}

func (std *celltodo) add(i int) {
	if std.tail >= 0 {
		std.next[std.tail] = i
	} else {
		std.head = i
	}
	std.tail = i
	std.next[i] = -1
}
