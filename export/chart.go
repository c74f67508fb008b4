package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/32bitkid/dopefish/resource"
)

// ChunkLengths decodes every chunk until its data runs out. Chunks that
// fail to decode are left out.
func ChunkLengths(idx *resource.ChunkIndex) (chunks, lengths []float64) {
	for i := 0; i < idx.Len(); i++ {
		data, err := idx.Decode(i, resource.AutoLength, 0)
		if err != nil {
			continue
		}
		chunks = append(chunks, float64(i))
		lengths = append(lengths, float64(len(data)))
	}
	return chunks, lengths
}

// ChunkChart plots the decoded length of every chunk as SVG. Runs of 16x16
// tiles show up as flat bands, which helps when tuning tile ranges.
func ChunkChart(w io.Writer, idx *resource.ChunkIndex) error {
	xvals, yvals := ChunkLengths(idx)
	if len(xvals) < 2 {
		return errors.New("need at least two chunks to chart")
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "chunk"},
		YAxis: chart.YAxis{Name: "decoded bytes"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					DotWidth: 3,
				},
				XValues: xvals,
				YValues: yvals,
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return errors.Wrap(err, "unable to render chunk chart")
	}
	return nil
}
