package watermarklab

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/nkowalski/watermarklab/internal/attack"
)

func testCombinations() []Combination {
	dct := DCTParams{
		BlockSize: 8,
		Coef1:     [2]int{3, 1},
		Coef2:     [2]int{4, 1},
		Strength:  20,
	}
	lsb := LSBParams{BitPlane: 2}
	return []Combination{
		{Component: ComponentY, Embed: dct},
		{Component: ComponentY, Embed: dct, Attack: "mirror"},
		{Component: ComponentY, Embed: dct, Attack: "noise", AttackParams: attack.Params{"sigma": 5, "seed": 3}},
		{Component: ComponentY, Embed: lsb},
		{Component: ComponentY, Embed: lsb, Attack: "jpeg", AttackParams: attack.Params{"quality": 60}},
	}
}

func TestHarness_RunOrdersByTestID(t *testing.T) {
	img := createTestImage(96, 96)
	wm := randomWatermark(8, 8, 20)
	h := &Harness{Workers: 3}
	report, err := h.Run(img, wm, testCombinations())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RunID == "" {
		t.Error("report must carry a run id")
	}
	if len(report.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(report.Results))
	}
	for i, res := range report.Results {
		if res.TestID != i+1 {
			t.Errorf("result %d: TestID %d, want %d", i, res.TestID, i+1)
		}
	}
}

func TestHarness_DCTSurvivesPipeline(t *testing.T) {
	// The frequency-domain mark must survive the YCbCr/RGB round trip
	// with no attack applied.
	img := createTestImage(96, 96)
	wm := randomWatermark(8, 8, 21)
	h := &Harness{}
	report, err := h.Run(img, wm, testCombinations()[:1])
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	res := report.Results[0]
	if res.Method != MethodDCT {
		t.Fatalf("got method %v, want DCT", res.Method)
	}
	if res.BER > 0.1 {
		t.Errorf("unattacked DCT BER %v, want <= 0.1", res.BER)
	}
	if res.PSNR <= 20 {
		t.Errorf("embedding PSNR %v suspiciously low", res.PSNR)
	}
}

func TestHarness_ResultsPopulated(t *testing.T) {
	img := createTestImage(96, 96)
	wm := randomWatermark(8, 8, 22)
	h := &Harness{Workers: 2}
	report, err := h.Run(img, wm, testCombinations())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, res := range report.Results {
		if res.Rating == "" {
			t.Errorf("test %d: empty rating", res.TestID)
		}
		if res.Attack == "" {
			t.Errorf("test %d: empty attack name", res.TestID)
		}
		if res.BER < 0 || res.BER > 1 {
			t.Errorf("test %d: BER %v outside [0,1]", res.TestID, res.BER)
		}
		if res.NC < -1 || res.NC > 1 {
			t.Errorf("test %d: NC %v outside [-1,1]", res.TestID, res.NC)
		}
	}
	if report.Results[0].Attack != "none" {
		t.Errorf("attackless combination must report as %q, got %q", "none", report.Results[0].Attack)
	}
}

func TestHarness_RecordsResolvedAttackParams(t *testing.T) {
	// The report must carry the parameters the attack actually ran with,
	// defaults included, so a row is reproducible on its own.
	img := createTestImage(96, 96)
	wm := randomWatermark(8, 8, 24)
	combos := []Combination{
		{Component: ComponentY, Embed: LSBParams{BitPlane: 2}, Attack: "jpeg"},
		{Component: ComponentY, Embed: LSBParams{BitPlane: 2}, Attack: "noise", AttackParams: attack.Params{"sigma": 5}},
		{Component: ComponentY, Embed: LSBParams{BitPlane: 2}},
	}
	h := &Harness{}
	report, err := h.Run(img, wm, combos)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := report.Results[0].AttackParams; got != "quality=75" {
		t.Errorf("default jpeg: got %q, want %q", got, "quality=75")
	}
	if got := report.Results[1].AttackParams; got != "seed=1 sigma=5" {
		t.Errorf("partial noise: got %q, want %q", got, "seed=1 sigma=5")
	}
	if got := report.Results[2].AttackParams; got != "" {
		t.Errorf("attackless: got %q, want empty", got)
	}
}

func TestRunReport_WriteCSV(t *testing.T) {
	img := createTestImage(96, 96)
	wm := randomWatermark(8, 8, 23)
	h := &Harness{}
	report, err := h.Run(img, wm, testCombinations()[:2])
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(rows))
	}
	wantHeader := "Attack Type,Method,Component,Parameter,BER,NC,PSNR,Quality Rating"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Errorf("header: got %q, want %q", got, wantHeader)
	}
	if rows[1][0] != "none" || rows[2][0] != "mirror" {
		t.Errorf("rows out of order: %q, %q", rows[1][0], rows[2][0])
	}
	if rows[1][1] != "DCT" || rows[1][2] != "Y" {
		t.Errorf("method/component: got %q/%q", rows[1][1], rows[1][2])
	}
}
