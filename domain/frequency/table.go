package frequency

// Table maps an observed integer value to its occurrence count for one
// slot (or for the star-gap distribution). Values never observed are
// absent from the map; Count treats absence as zero.
type Table map[int]int

// Build derives a frequency table from a column of observed values.
// The result is read-only by convention: nothing in this package mutates
// a table after Build returns.
func Build(values []int) Table {
	t := make(Table, len(values))
	for _, v := range values {
		t[v]++
	}
	return t
}

// Count returns the occurrence count for v, defaulting to 0 when v was
// never observed. It never panics on missing keys.
func (t Table) Count(v int) int {
	return t[v]
}

// Total returns the number of observations the table was built from.
func (t Table) Total() int {
	sum := 0
	for _, n := range t {
		sum += n
	}
	return sum
}
