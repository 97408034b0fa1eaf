package falcon

import "github.com/tuneinsight/lattigo/v4/utils"

// sigmaFG is the per-draw width used when sampling the secret polynomials
// f and g. Each coefficient sums 4096/n draws, which yields the target
// width 1.17 * sqrt(q/2n) at every degree.
const sigmaFG = 1.43300980528773

// genPoly samples a length-n secret polynomial with discrete Gaussian
// coefficients. n must divide 4096.
func genPoly(prng utils.PRNG, n int) ([]int16, error) {
	k := 4096 / n
	f := make([]int16, n)
	for i := range f {
		var s int64
		for j := 0; j < k; j++ {
			z, err := samplerZ(prng, 0, sigmaFG, sigmaFG-0.001)
			if err != nil {
				return nil, err
			}
			s += z
		}
		f[i] = int16(s)
	}
	return f, nil
}
