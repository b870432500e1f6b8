package core

// Shared test doubles. fakeMetrics measures every grapheme at a fixed
// advance, mimicking the monospace host font; unmeasured graphemes can be
// injected to exercise the fallback path.

type fakeMetrics struct {
	char       float64
	lineHeight float64
	unmeasured map[string]bool
}

func newFakeMetrics(char, lineHeight float64) fakeMetrics {
	return fakeMetrics{char: char, lineHeight: lineHeight}
}

func (f fakeMetrics) Advance(gr string) (float64, bool) {
	if f.unmeasured[gr] {
		return 0, false
	}
	return f.char, true
}

func (f fakeMetrics) LineHeight() float64 { return f.lineHeight }

type fakeDoc struct {
	lines []string
	rev   uint64
}

func (d *fakeDoc) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

func (d *fakeDoc) LineCount() int   { return len(d.lines) }
func (d *fakeDoc) Revision() uint64 { return d.rev }

func (d *fakeDoc) edit(i int, text string) {
	d.lines[i] = text
	d.rev++
}

func (d *fakeDoc) insert(at int, text string) {
	d.lines = append(d.lines[:at], append([]string{text}, d.lines[at:]...)...)
	d.rev++
}

func (d *fakeDoc) remove(at int) {
	d.lines = append(d.lines[:at], d.lines[at+1:]...)
	d.rev++
}

// countingDoc records how often each line's text is fetched, which is a
// proxy for wrap recomputation: the cache reads a line exactly once per
// layout computation.
type countingDoc struct {
	fakeDoc
	reads map[int]int
}

func newCountingDoc(lines []string) *countingDoc {
	return &countingDoc{
		fakeDoc: fakeDoc{lines: lines},
		reads:   make(map[int]int),
	}
}

func (d *countingDoc) Line(i int) string {
	d.reads[i]++
	return d.fakeDoc.Line(i)
}

func repeatLines(n int, text string) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = text
	}
	return lines
}
