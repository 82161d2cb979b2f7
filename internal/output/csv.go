package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{
	"ID", "Title", "Severity", "Weight", "Result", "Evidence Path", "Evidence Value",
	"NIST AI RMF", "EU AI Act", "Remediation Steps", "Required Artifacts",
}

// WriteCSV writes one row per verdict. Output starts with a UTF-8 BOM for
// clean Excel opening on Windows.
func WriteCSV(w io.Writer, e Evaluation) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	for _, v := range e.Verdicts {
		_ = cw.Write([]string{
			v.ID,
			v.Title,
			v.Severity,
			strconv.Itoa(v.Weight),
			result(v.Passed),
			v.EvidencePath,
			v.EvidenceValue.String(),
			strings.Join(v.NISTMapping, ";"),
			v.EUArticle,
			strings.Join(v.RemediationSteps, " | "),
			strings.Join(v.RequiredArtifacts, ";"),
		})
	}
	cw.Flush()
	return cw.Error()
}

func result(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
