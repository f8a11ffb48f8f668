// Batch robustness evaluation.
//
// The harness sweeps embedding-method x parameter x attack combinations.
// Every combination is independent, so the sweep fans out over a worker
// pool; results land in a slice indexed by test id, which keeps the report
// ordered by id no matter how the scheduler interleaves workers.
package watermarklab

import (
	"encoding/csv"
	"fmt"
	"image"
	"io"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nkowalski/watermarklab/internal/attack"
)

// Combination is one cell of the evaluation sweep: an embedding
// configuration paired with an attack configuration.
type Combination struct {
	// Component is the YCbCr plane the watermark is embedded into.
	Component Component
	// Embed selects the watermarking method and its parameters.
	Embed EmbedParams
	// Attack names the registered attack applied between embedding and
	// extraction. Empty means no attack.
	Attack string
	// AttackParams overrides attack parameter defaults.
	AttackParams attack.Params
}

// AttackNames returns the names of all registered attacks.
func AttackNames() []string { return attack.Names() }

// ApplyAttack runs a registered attack on an image.
func ApplyAttack(name string, img image.Image, p attack.Params) (image.Image, error) {
	return attack.Apply(name, img, p)
}

// Harness runs evaluation sweeps.
type Harness struct {
	// Workers caps the worker pool; zero or negative means NumCPU.
	Workers int
	// Scale maps scores onto rating labels; zero value means the default
	// scale.
	Scale RatingScale
}

// RunReport collects the results of one sweep, ordered by test id.
type RunReport struct {
	RunID   string
	Results []EvaluationResult
}

// Run embeds the watermark into src under every combination, applies the
// combination's attack, re-extracts, and scores the survival. Test ids are
// assigned in combination order starting at 1.
func (h *Harness) Run(src image.Image, wm *Watermark, combos []Combination) (*RunReport, error) {
	workers := h.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	scale := h.Scale
	if scale.Labels == ([4]string{}) {
		scale = DefaultRatingScale
	}

	results := make([]EvaluationResult, len(combos))
	errs := make([]error, len(combos))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := range combos {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			res, err := h.runOne(src, wm, combos[i], i+1, scale)
			if err != nil {
				errs[i] = fmt.Errorf("combination %d: %w", i+1, err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &RunReport{RunID: uuid.NewString(), Results: results}, nil
}

func (h *Harness) runOne(src image.Image, wm *Watermark, combo Combination, id int, scale RatingScale) (EvaluationResult, error) {
	state := NewImageState(src)
	state.ConvertToYCbCr()
	plane, err := state.Plane(combo.Component)
	if err != nil {
		return EvaluationResult{}, err
	}
	marked, err := Embed(plane, wm, combo.Embed)
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("embedding: %w", err)
	}
	if err := state.SetPlane(combo.Component, marked); err != nil {
		return EvaluationResult{}, err
	}
	if err := state.ConvertToRGB(); err != nil {
		return EvaluationResult{}, err
	}
	markedImg := state.Image()

	// Imperceptibility: original versus watermarked, before the attack.
	psnr, err := rgbPSNR(NewImageState(src), state)
	if err != nil {
		return EvaluationResult{}, err
	}

	attacked := image.Image(markedImg)
	var resolved attack.Params
	if combo.Attack != "" {
		// Record the resolved map, defaults included, so default-parameter
		// rows stay reproducible.
		resolved, err = attack.Resolve(combo.Attack, combo.AttackParams)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("attacking: %w", err)
		}
		attacked, err = attack.Apply(combo.Attack, markedImg, resolved)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("attacking: %w", err)
		}
	}

	attackedState := NewImageState(attacked)
	attackedState.ConvertToYCbCr()
	attackedPlane, err := attackedState.Plane(combo.Component)
	if err != nil {
		return EvaluationResult{}, err
	}
	extracted, err := Extract(attackedPlane, wm.Width(), wm.Height(), combo.Embed)
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("extracting: %w", err)
	}

	ber, err := BER(wm, extracted)
	if err != nil {
		return EvaluationResult{}, err
	}
	nc, err := NC(wm, extracted)
	if err != nil {
		return EvaluationResult{}, err
	}

	attackName := combo.Attack
	if attackName == "" {
		attackName = "none"
	}
	return EvaluationResult{
		TestID:       id,
		Attack:       attackName,
		AttackParams: formatParams(resolved),
		Method:       combo.Embed.Method(),
		Component:    combo.Component,
		MethodParams: combo.Embed.Describe(),
		BER:          ber,
		NC:           nc,
		PSNR:         psnr,
		Rating:       scale.Rate(ber, nc),
	}, nil
}

// rgbPSNR averages the three channel MSEs before the decibel conversion.
func rgbPSNR(a, b *ImageState) (float64, error) {
	ar, ag, ab := a.RGBPlanes()
	br, bg, bb := b.RGBPlanes()
	mseR, err := MSE(planeFromInts(ar), planeFromInts(br))
	if err != nil {
		return 0, err
	}
	mseG, err := MSE(planeFromInts(ag), planeFromInts(bg))
	if err != nil {
		return 0, err
	}
	mseB, err := MSE(planeFromInts(ab), planeFromInts(bb))
	if err != nil {
		return 0, err
	}
	return PSNRForRGB(mseR, mseG, mseB), nil
}

func formatParams(p attack.Params) string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(p[k], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// csvHeader is the stable report column order.
var csvHeader = []string{
	"Attack Type", "Method", "Component", "Parameter",
	"BER", "NC", "PSNR", "Quality Rating",
}

// WriteCSV writes the report rows in test id order.
func (r *RunReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, res := range r.Results {
		param := res.MethodParams
		if res.AttackParams != "" {
			param += "; " + res.AttackParams
		}
		row := []string{
			res.Attack,
			res.Method.String(),
			res.Component.String(),
			param,
			strconv.FormatFloat(res.BER, 'f', 4, 64),
			strconv.FormatFloat(res.NC, 'f', 4, 64),
			strconv.FormatFloat(res.PSNR, 'f', 4, 64),
			res.Rating,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
