package truetype

// insertionSortThreshold is the partition size below which quicksort
// hands over to insertion sort.
const insertionSortThreshold = 12

// sortEdges orders edges by y0. Quicksort leaves partitions of at most
// insertionSortThreshold elements unsorted and a final insertion pass
// finishes them.
func sortEdges(p []edge) {
	quicksortEdges(p)
	insertionSortEdges(p)
}

func edgeLess(a, b *edge) bool { return a.y0 < b.y0 }

func insertionSortEdges(p []edge) {
	for i := 1; i < len(p); i++ {
		t := p[i]
		j := i
		for j > 0 && edgeLess(&t, &p[j-1]) {
			p[j] = p[j-1]
			j--
		}
		if i != j {
			p[j] = t
		}
	}
}

func quicksortEdges(p []edge) {
	n := len(p)
	for n > insertionSortThreshold {
		// Median of three, swapped to the front.
		m := n >> 1
		c01 := edgeLess(&p[0], &p[m])
		c12 := edgeLess(&p[m], &p[n-1])
		if c01 != c12 {
			c := edgeLess(&p[0], &p[n-1])
			z := n - 1
			if c == c12 {
				z = 0
			}
			p[z], p[m] = p[m], p[z]
		}
		p[0], p[m] = p[m], p[0]

		// Equal keys stop both scans so duplicates split evenly.
		i, j := 1, n-1
		for {
			for edgeLess(&p[i], &p[0]) {
				i++
			}
			for edgeLess(&p[0], &p[j]) {
				j--
			}
			if i >= j {
				break
			}
			p[i], p[j] = p[j], p[i]
			i++
			j--
		}

		// Recurse into the smaller side, loop on the larger.
		if j < n-i {
			quicksortEdges(p[:j])
			p = p[i:]
			n = n - i
		} else {
			quicksortEdges(p[i:n])
			n = j
			p = p[:n]
		}
	}
}
