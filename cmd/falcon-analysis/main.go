//go:build analysis

package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/schollz/progressbar/v3"
	"github.com/tuneinsight/lattigo/v4/utils"

	falcon "falcon-signature/falcon"
	measure "falcon-signature/measure"
)

func prngFor(seedHex string) (utils.PRNG, error) {
	if seedHex == "" {
		return falcon.NewSystemPRNG()
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("bad -seed: %w", err)
	}
	return falcon.NewSeededPRNG(seed)
}

type summaryStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	AbsMax float64 `json:"abs_max"`
}

// ------------------------------ stats utilities ------------------------------

func computeStats(x []float64) summaryStats {
	n := len(x)
	if n == 0 {
		return summaryStats{}
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(n)
	var m2, absMax float64
	for _, v := range x {
		d := v - mean
		m2 += d * d
		if a := math.Abs(v); a > absMax {
			absMax = a
		}
	}
	var std float64
	if n > 1 {
		std = math.Sqrt(m2 / float64(n-1))
	}
	return summaryStats{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    cp[0],
		Q1:     quantileSorted(cp, 0.25),
		Median: quantileSorted(cp, 0.5),
		Q3:     quantileSorted(cp, 0.75),
		Max:    cp[n-1],
		AbsMax: absMax,
	}
}

func quantileSorted(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	l := int(math.Floor(pos))
	r := int(math.Ceil(pos))
	if l == r {
		return sorted[l]
	}
	w := pos - float64(l)
	return sorted[l]*(1-w) + sorted[r]*w
}

// freedmanDiaconisBins picks a bin count from the IQR-based rule, clamped
// to a range that renders well.
func freedmanDiaconisBins(x []float64) int {
	n := len(x)
	if n < 2 {
		return 1
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	iqr := quantileSorted(cp, 0.75) - quantileSorted(cp, 0.25)
	width := 2 * iqr * math.Pow(float64(n), -1.0/3.0)
	if width <= 0 {
		return clampBins(n)
	}
	return clampBins(int(math.Ceil((cp[n-1] - cp[0]) / width)))
}

func clampBins(k int) int {
	if k < 40 {
		return 40
	}
	if k > 1500 {
		return 1500
	}
	return k
}

func computeHistogram(values []float64, nbins int) (edges []float64, counts []int) {
	if len(values) == 0 {
		return []float64{0, 1}, []int{0}
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	minv, maxv := cp[0], cp[len(cp)-1]
	if nbins < 1 {
		nbins = 1
	}
	width := (maxv - minv) / float64(nbins)
	if width <= 0 {
		width = 1
	}
	edges = make([]float64, nbins+1)
	for i := 0; i <= nbins; i++ {
		edges[i] = minv + float64(i)*width
	}
	counts = make([]int, nbins)
	for _, v := range values {
		idx := int(math.Floor((v - minv) / width))
		if idx < 0 {
			idx = 0
		}
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx]++
	}
	return
}

// ------------------------- collection helpers -------------------------

func appendInt16(vals []float64, xs []int16) []float64 {
	for _, v := range xs {
		vals = append(vals, float64(v))
	}
	return vals
}

func appendUint16(vals []float64, xs []uint16) []float64 {
	for _, v := range xs {
		vals = append(vals, float64(v))
	}
	return vals
}

// recomputeS1 rebuilds the implicit first half of a signature the way a
// verifier does, as centered coefficients of c - s2*h mod q.
func recomputeS1(pk *falcon.PublicKey, msg []byte, sig *falcon.Signature) ([]int16, error) {
	point := falcon.HashToPoint(pk.Params().N, sig.Salt(), msg)
	prod, err := falcon.Convolve(falcon.DecenterToModQ(sig.Coefficients()), pk.Coefficients())
	if err != nil {
		return nil, err
	}
	return falcon.CenterModQ(falcon.SubModQ(point, prod)), nil
}

// ------------------------- plotting: go-echarts HTML -------------------------

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newHistogramChart(title string, values []float64, stats summaryStats) *charts.Bar {
	nbins := freedmanDiaconisBins(values)
	edges, counts := computeHistogram(values, nbins)
	xLabels := make([]string, nbins)
	for i := 0; i < nbins; i++ {
		center := 0.5 * (edges[i] + edges[i+1])
		xLabels[i] = fmt.Sprintf("%.2f", center)
	}
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("n=%d, mean=%.3f, std=%.3f, median=%.3f, absmax=%.0f",
		stats.Count, stats.Mean, stats.Std, stats.Median, stats.AbsMax)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ------------------------------- main routine -------------------------------

func main() {
	runs := flag.Int("runs", 16, "number of keygen runs")
	sigs := flag.Int("sigs", 8, "signatures per key")
	degree := flag.Int("n", 512, "ring degree, 512 or 1024")
	seedHex := flag.String("seed", "", "hex seed for a deterministic batch (32 bytes)")
	outDir := flag.String("out", "analysis_reports", "output directory for reports")
	flag.Parse()

	var par falcon.Params
	switch *degree {
	case 512:
		par = falcon.Falcon512()
	case 1024:
		par = falcon.Falcon1024()
	default:
		log.Fatalf("unsupported degree %d", *degree)
	}
	prng, err := prngFor(*seedHex)
	if err != nil {
		log.Fatalf("prng: %v", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	var allF, allG, allBigF, allBigG, allH []float64
	var allS1, allS2, allNorm, allAttempts []float64
	var keygenMS, signMS, verifyMS []float64

	bar := progressbar.Default(int64(*runs))
	for i := 0; i < *runs; i++ {
		var pk *falcon.PublicKey
		var sk *falcon.SecretKey
		for {
			start := time.Now()
			pk, sk, err = falcon.Keygen(par, prng, falcon.KeygenOpts{})
			if err == nil {
				keygenMS = append(keygenMS, float64(time.Since(start).Microseconds())/1000)
				break
			}
			if !errors.Is(err, falcon.ErrKeyGenerationFailed) {
				log.Fatalf("keygen: %v", err)
			}
			log.Printf("warn: run %d: %v, retrying", i, err)
		}

		f, g, F, G := sk.Basis()
		allF = appendInt16(allF, f)
		allG = appendInt16(allG, g)
		allBigF = appendInt16(allBigF, F)
		allBigG = appendInt16(allBigG, G)
		allH = appendUint16(allH, pk.Coefficients())
		if measure.Enabled {
			measure.Global.Add("falcon/public_key", int64(len(pk.Encode())))
			measure.Global.Add("falcon/secret_key", int64(len(sk.Encode())))
		}

		signer := falcon.NewSigner(sk)
		for j := 0; j < *sigs; j++ {
			msg := []byte(fmt.Sprintf("analysis-%d-%d", i, j))
			start := time.Now()
			sig, err := signer.Sign(msg, prng)
			if err != nil {
				log.Fatalf("sign: %v", err)
			}
			signMS = append(signMS, float64(time.Since(start).Microseconds())/1000)
			allAttempts = append(allAttempts, float64(signer.Attempts()))
			if measure.Enabled {
				if enc, err := sig.Encode(); err == nil {
					measure.Global.Add("falcon/signature", int64(len(enc)))
				}
			}

			start = time.Now()
			if !pk.Verify(msg, sig) {
				log.Fatalf("run %d sig %d: verification failed", i, j)
			}
			verifyMS = append(verifyMS, float64(time.Since(start).Microseconds())/1000)

			s1, err := recomputeS1(pk, msg, sig)
			if err != nil {
				log.Fatalf("recompute s1: %v", err)
			}
			s2 := sig.Coefficients()
			var norm float64
			for k := range s1 {
				norm += float64(s1[k])*float64(s1[k]) + float64(s2[k])*float64(s2[k])
			}
			allS1 = appendInt16(allS1, s1)
			allS2 = appendInt16(allS2, s2)
			allNorm = append(allNorm, norm)
		}
		bar.Add(1)
	}

	outStats := map[string]summaryStats{
		"f":             computeStats(allF),
		"g":             computeStats(allG),
		"F":             computeStats(allBigF),
		"G":             computeStats(allBigG),
		"h":             computeStats(allH),
		"s1":            computeStats(allS1),
		"s2":            computeStats(allS2),
		"norm":          computeStats(allNorm),
		"sign_attempts": computeStats(allAttempts),
		"keygen_ms":     computeStats(keygenMS),
		"sign_ms":       computeStats(signMS),
		"verify_ms":     computeStats(verifyMS),
	}

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("falcon_stats_%s.json", ts))
	if err := saveJSON(jsonPath, outStats); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	page := components.NewPage()
	add := func(name string, vals []float64) {
		if len(vals) == 0 {
			return
		}
		page.AddCharts(newHistogramChart(name, vals, computeStats(vals)))
	}
	add("f (trapdoor)", allF)
	add("g (trapdoor)", allG)
	add("F (trapdoor)", allBigF)
	add("G (trapdoor)", allBigG)
	add("h (public)", allH)
	add("s1 (recomputed)", allS1)
	add("s2 (signature)", allS2)
	add(fmt.Sprintf("squared norm (bound %d)", par.SigBound), allNorm)
	add("sign attempts", allAttempts)
	add("keygen time (ms)", keygenMS)
	add("sign time (ms)", signMS)
	add("verify time (ms)", verifyMS)

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("falcon_histograms_%s.html", ts))
	fh, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer fh.Close()
	if err := page.Render(fh); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Histogram page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
	if measure.Enabled {
		measure.Global.Dump()
	}
}
