package tensor

import (
	"strconv"
	"strings"
)

// String renders the tensor as nested brackets, one level per dimension:
// a (2, 2) tensor prints as [[1, 2], [3, 4]].
func (t *Tensor) String() string {
	if !t.IsValid() || len(t.data) == 0 {
		return "[]"
	}

	// steps[i] is the number of elements spanned by one entry of dimension i-1.
	steps := make([]int, len(t.dims))
	acc := 1
	for i := len(t.dims) - 1; i >= 0; i-- {
		acc *= t.dims[i]
		steps[i] = acc
	}

	var sb strings.Builder
	count := 0
	for _, v := range t.data {
		for _, step := range steps {
			if count%step == 0 {
				sb.WriteByte('[')
			}
		}

		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, typeBits))
		count++

		for _, step := range steps {
			if count%step == 0 {
				sb.WriteByte(']')
			}
		}
		if count != steps[0] {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
