// Chroma subsampling.
//
// Downsampling uses point decimation (surviving samples are kept as-is,
// discarded ones are dropped, not averaged) and upsampling replicates each
// surviving sample back over the positions it displaced. This is simpler
// than the averaging filters a production JPEG encoder would use and is
// lossy for any pattern other than 4:4:4: a down/up round trip restores the
// original dimensions but not the discarded samples.
package watermarklab

import "gonum.org/v1/gonum/mat"

// downSamplePlane decimates a chroma plane according to the sampling mode.
func downSamplePlane(m *mat.Dense, mode SamplingMode) *mat.Dense {
	rows, cols := m.Dims()
	switch mode {
	case Sampling422:
		out := mat.NewDense(rows, (cols+1)/2, nil)
		for r := 0; r < rows; r++ {
			for c := 0; c*2 < cols; c++ {
				out.Set(r, c, m.At(r, c*2))
			}
		}
		return out
	case Sampling420:
		out := mat.NewDense((rows+1)/2, (cols+1)/2, nil)
		for r := 0; r*2 < rows; r++ {
			for c := 0; c*2 < cols; c++ {
				out.Set(r, c, m.At(r*2, c*2))
			}
		}
		return out
	case Sampling411:
		out := mat.NewDense(rows, (cols+3)/4, nil)
		for r := 0; r < rows; r++ {
			for c := 0; c*4 < cols; c++ {
				out.Set(r, c, m.At(r, c*4))
			}
		}
		return out
	default: // 4:4:4
		return clonePlane(m)
	}
}

// upSamplePlane replicates a decimated chroma plane back to the given
// dimensions. For 4:2:0 the vertical replication mirrors the fact that
// rows were decimated after columns on the way down.
func upSamplePlane(m *mat.Dense, mode SamplingMode, rows, cols int) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			switch mode {
			case Sampling422:
				out.Set(r, c, m.At(r, c/2))
			case Sampling420:
				out.Set(r, c, m.At(r/2, c/2))
			case Sampling411:
				out.Set(r, c, m.At(r, c/4))
			default:
				out.Set(r, c, m.At(r, c))
			}
		}
	}
	return out
}
