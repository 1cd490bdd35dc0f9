// Package handlers provides HTTP handlers for the msvfilter API.
package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/aria-lang/msvfilter-go/internal/config"
	"github.com/aria-lang/msvfilter-go/pkg/msvfilter"
)

const maxBodyBytes = 8 << 20

// Handler serves the API with the limits from cfg.
type Handler struct {
	cfg *config.Config
}

// New creates a Handler.
func New(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return false
	}
	return true
}

// AlphabetResponse describes the amino acid alphabet.
type AlphabetResponse struct {
	Symbols string `json:"symbols"`
	K       int    `json:"k"`
	Kp      int    `json:"kp"`
	Gap     int    `json:"gap"`
	Any     int    `json:"any"`
	Illegal int    `json:"illegal"`
}

// Alphabet handles alphabet requests.
func (h *Handler) Alphabet(w http.ResponseWriter, r *http.Request) {
	abc := msvfilter.Amino
	writeJSON(w, http.StatusOK, AlphabetResponse{
		Symbols: abc.Symbols(),
		K:       abc.K(),
		Kp:      abc.Kp(),
		Gap:     int(abc.Gap()),
		Any:     int(abc.Any()),
		Illegal: int(msvfilter.Illegal),
	})
}

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
}

// DigitizeResponse is the digital form of a sequence, sentinels included.
type DigitizeResponse struct {
	Length       int    `json:"length"`
	Digital      []int  `json:"digital"`
	Text         string `json:"text"`
	NonCanonical int    `json:"non_canonical"`
}

// Digitize handles digitize requests.
func (h *Handler) Digitize(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !decode(w, r, &req) {
		return
	}

	seq, err := msvfilter.NewSequence(req.Sequence)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	digital := make([]int, len(seq.Dsq))
	for i, x := range seq.Dsq {
		digital[i] = int(x)
	}

	writeJSON(w, http.StatusOK, DigitizeResponse{
		Length:       seq.Len(),
		Digital:      digital,
		Text:         seq.Dsq.Text(msvfilter.Amino),
		NonCanonical: seq.Dsq.CountNonCanonical(msvfilter.Amino),
	})
}

// ScoreRequest is a sequence and the profile to score it against. With
// Strict set, characters outside the alphabet are rejected instead of
// scored as non-residues.
type ScoreRequest struct {
	Sequence string      `json:"sequence"`
	Profile  ProfileSpec `json:"profile"`
	Strict   bool        `json:"strict,omitempty"`
}

// ScoreResponse represents the response for a single score.
type ScoreResponse struct {
	Score          float64 `json:"score"`
	ModelLength    int     `json:"model_length"`
	SequenceLength int     `json:"sequence_length"`
}

// checkSize bounds the profile and problem size before anything is
// allocated for them.
func (h *Handler) checkSize(spec *ProfileSpec, l int) error {
	if err := h.cfg.CheckModel(spec.M()); err != nil {
		return err
	}
	return h.cfg.CheckCells(spec.M(), l)
}

func (h *Handler) newSequence(text string, strict bool) (*msvfilter.Sequence, error) {
	if strict {
		if err := msvfilter.Validate(text); err != nil {
			return nil, err
		}
	}
	return msvfilter.NewSequence(text)
}

func (h *Handler) prepare(w http.ResponseWriter, req *ScoreRequest) (*msvfilter.Sequence, *msvfilter.Profile, bool) {
	seq, err := h.newSequence(req.Sequence, req.Strict)
	if err != nil {
		writeError(w, statusFor(err), fmt.Errorf("sequence: %w", err))
		return nil, nil, false
	}

	if err := h.checkSize(&req.Profile, seq.Len()); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return nil, nil, false
	}

	prof, err := req.Profile.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("profile: %w", err))
		return nil, nil, false
	}
	return seq, prof, true
}

// Score handles single-sequence scoring requests.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decode(w, r, &req) {
		return
	}

	seq, prof, ok := h.prepare(w, &req)
	if !ok {
		return
	}

	sc, err := msvfilter.ScoreText(seq.Text, prof)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		Score:          finite(sc),
		ModelLength:    prof.M(),
		SequenceLength: seq.Len(),
	})
}

// MatrixResponse carries a score and the filled match plane. Cells that
// are not finite are null.
type MatrixResponse struct {
	ScoreResponse
	Rows [][]*float64 `json:"rows"`
}

// Matrix handles requests for the full DP matrix.
func (h *Handler) Matrix(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decode(w, r, &req) {
		return
	}

	seq, prof, ok := h.prepare(w, &req)
	if !ok {
		return
	}

	if cells := (prof.M() + 1) * (seq.Len() + 1); cells > h.cfg.MatrixMaxCells {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("matrix of %d cells exceeds limit of %d", cells, h.cfg.MatrixMaxCells))
		return
	}

	sc, mx, err := msvfilter.ScoreMatrix(seq.Dsq, prof)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	rows := mx.Rows()
	out := make([][]*float64, len(rows))
	for i, row := range rows {
		out[i] = make([]*float64, len(row))
		for k, v := range row {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			out[i][k] = &row[k]
		}
	}

	writeJSON(w, http.StatusOK, MatrixResponse{
		ScoreResponse: ScoreResponse{
			Score:          finite(sc),
			ModelLength:    prof.M(),
			SequenceLength: seq.Len(),
		},
		Rows: out,
	})
}

// NamedSequence is one entry of a batch.
type NamedSequence struct {
	Name     string `json:"name"`
	Sequence string `json:"sequence"`
}

// BatchRequest scores several sequences against one profile.
type BatchRequest struct {
	Sequences []NamedSequence `json:"sequences"`
	Profile   ProfileSpec     `json:"profile"`
	Strict    bool            `json:"strict,omitempty"`
}

// BatchResponse lists per-sequence scores in request order, with
// summaries of the scores and of the input sequences.
type BatchResponse struct {
	Results []msvfilter.Result          `json:"results"`
	Summary *msvfilter.ScoreStats       `json:"summary"`
	Input   *msvfilter.SequenceSetStats `json:"input"`
}

// Batch handles batch scoring requests.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decode(w, r, &req) {
		return
	}

	if len(req.Sequences) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("sequences cannot be empty"))
		return
	}

	if err := h.cfg.CheckModel(req.Profile.M()); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	seqs := make([]*msvfilter.Sequence, len(req.Sequences))
	for i, ns := range req.Sequences {
		seq, err := h.newSequence(ns.Sequence, req.Strict)
		if err != nil {
			writeError(w, statusFor(err), fmt.Errorf("sequence %d: %w", i, err))
			return
		}
		if err := h.cfg.CheckCells(req.Profile.M(), seq.Len()); err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("sequence %d: %w", i, err))
			return
		}
		seq.Name = ns.Name
		seqs[i] = seq
	}

	prof, err := req.Profile.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("profile: %w", err))
		return
	}

	results, err := msvfilter.ScoreAll(r.Context(), prof, seqs, h.cfg.Workers)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	for i := range results {
		results[i].Score = finite(results[i].Score)
	}

	summary, err := msvfilter.Summarize(results)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	input, err := msvfilter.SummarizeSequences(seqs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, BatchResponse{Results: results, Summary: summary, Input: input})
}

// statusFor maps sequence input errors to 400 and everything else to 500.
func statusFor(err error) int {
	if msvfilter.IsSequenceError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// finite clamps +Inf to the largest float so the value stays encodable.
func finite(v float64) float64 {
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}
