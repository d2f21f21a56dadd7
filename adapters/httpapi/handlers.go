package httpapi

import (
	"encoding/json"
	"net/http"

	"e2pred/domain/effectsize"
	"e2pred/domain/empirical"
	"e2pred/domain/parametric"
	"e2pred/domain/reliability"
	"e2pred/internal/errors"
	"e2pred/ports"
)

// Request bodies mirror the wire field names of the result records. Optional
// parameters are pointers so an omitted field takes the engine default while
// an explicit out-of-domain value (icc 0, threshold_prob 0) is rejected.

type parametricBinaryRequest struct {
	CohensD       float64  `json:"cohens_d"`
	BaseRate      float64  `json:"base_rate"`
	ThresholdProb *float64 `json:"threshold_prob"`
	ICC1          *float64 `json:"icc1"`
	ICC2          *float64 `json:"icc2"`
	Kappa         *float64 `json:"kappa"`
	View          string   `json:"view"`
}

func (r parametricBinaryRequest) params() parametric.Params {
	p := parametric.NewParams(r.CohensD, r.BaseRate)
	if r.ThresholdProb != nil {
		p.ThresholdProb = *r.ThresholdProb
	}
	if r.ICC1 != nil {
		p.ICC1 = *r.ICC1
	}
	if r.ICC2 != nil {
		p.ICC2 = *r.ICC2
	}
	if r.Kappa != nil {
		p.Kappa = *r.Kappa
	}
	if r.View != "" {
		p.View = parametric.View(r.View)
	}
	return p
}

type parametricContinuousRequest struct {
	PearsonR      float64  `json:"pearson_r"`
	BaseRate      float64  `json:"base_rate"`
	ThresholdProb *float64 `json:"threshold_prob"`
	ReliabilityX  *float64 `json:"reliability_x"`
	ReliabilityY  *float64 `json:"reliability_y"`
	View          string   `json:"view"`
}

func (r parametricContinuousRequest) params() parametric.ContinuousParams {
	p := parametric.NewContinuousParams(r.PearsonR, r.BaseRate)
	if r.ThresholdProb != nil {
		p.ThresholdProb = *r.ThresholdProb
	}
	if r.ReliabilityX != nil {
		p.ReliabilityX = *r.ReliabilityX
	}
	if r.ReliabilityY != nil {
		p.ReliabilityY = *r.ReliabilityY
	}
	if r.View != "" {
		p.View = parametric.View(r.View)
	}
	return p
}

type empiricalBinaryRequest struct {
	Group1        []float64 `json:"group1"`
	Group2        []float64 `json:"group2"`
	BaseRate      float64   `json:"base_rate"`
	ThresholdProb float64   `json:"threshold_prob"`
	NBootstrap    int       `json:"n_bootstrap"`
	CILevel       float64   `json:"ci_level"`
	Seed          int64     `json:"seed"`
	Workers       int       `json:"workers"`
}

type empiricalContinuousRequest struct {
	X             []float64 `json:"x"`
	Y             []float64 `json:"y"`
	BaseRate      float64   `json:"base_rate"`
	ThresholdProb float64   `json:"threshold_prob"`
	NBootstrap    int       `json:"n_bootstrap"`
	CILevel       float64   `json:"ci_level"`
	Seed          int64     `json:"seed"`
	Workers       int       `json:"workers"`
}

type reliabilityShiftRequest struct {
	RCurrent     float64 `json:"r_current"`
	RTarget      float64 `json:"r_target"`
	PerGroup     bool    `json:"per_group"`
	R1Current    float64 `json:"r1_current"`
	R1Target     float64 `json:"r1_target"`
	R2Current    float64 `json:"r2_current"`
	R2Target     float64 `json:"r2_target"`
	KappaCurrent float64 `json:"kappa_current"`
	KappaTarget  float64 `json:"kappa_target"`
	Center       string  `json:"center"`
}

type convertRequest struct {
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	BaseRate float64 `json:"base_rate"`
}

type optimalThresholdRequest struct {
	parametricBinaryRequest
	Metric string `json:"metric"`
}

type reliabilityAttenuationRequest struct {
	CohensD float64  `json:"cohens_d"`
	Kappa   *float64 `json:"kappa"`
	ICC     *float64 `json:"icc"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParametricBinary(w http.ResponseWriter, r *http.Request) {
	var req parametricBinaryRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.ParametricBinary(r.Context(), req.params())
	s.respond(w, result, err)
}

func (s *Server) handleParametricContinuous(w http.ResponseWriter, r *http.Request) {
	var req parametricContinuousRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.ParametricContinuous(r.Context(), req.params())
	s.respond(w, result, err)
}

func (s *Server) handleEmpiricalBinary(w http.ResponseWriter, r *http.Request) {
	var req empiricalBinaryRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.EmpiricalBinary(r.Context(), req.toPort())
	s.respond(w, result, err)
}

func (s *Server) handleEmpiricalBinaryDeattenuated(w http.ResponseWriter, r *http.Request) {
	var req struct {
		empiricalBinaryRequest
		Shift reliabilityShiftRequest `json:"reliability_shift"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.EmpiricalBinaryDeattenuated(r.Context(), req.toPort(), req.Shift.toDomain())
	s.respond(w, result, err)
}

func (s *Server) handleEmpiricalContinuous(w http.ResponseWriter, r *http.Request) {
	var req empiricalContinuousRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.EmpiricalContinuous(r.Context(), req.toPort())
	s.respond(w, result, err)
}

func (s *Server) handleEmpiricalContinuousDeattenuated(w http.ResponseWriter, r *http.Request) {
	var req struct {
		empiricalContinuousRequest
		Shift reliabilityShiftRequest `json:"reliability_shift"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.EmpiricalContinuousDeattenuated(r.Context(), req.toPort(), req.Shift.toDomain())
	s.respond(w, result, err)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.Convert(req.Value, effectsize.Measure(req.From), effectsize.Measure(req.To), req.BaseRate)
	s.respond(w, result, err)
}

func (s *Server) handleOptimalThreshold(w http.ResponseWriter, r *http.Request) {
	var req optimalThresholdRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.OptimalThreshold(req.params(), parametric.OptimizeMetric(req.Metric))
	s.respond(w, result, err)
}

func (s *Server) handleReliabilityAttenuation(w http.ResponseWriter, r *http.Request) {
	var req reliabilityAttenuationRequest
	if !s.decode(w, r, &req) {
		return
	}
	kappa, icc := 1.0, 1.0
	if req.Kappa != nil {
		kappa = *req.Kappa
	}
	if req.ICC != nil {
		icc = *req.ICC
	}
	result, err := s.analyzer.ReliabilityAttenuation(req.CohensD, kappa, icc)
	s.respond(w, result, err)
}

func (r empiricalBinaryRequest) toPort() ports.EmpiricalBinaryRequest {
	return ports.EmpiricalBinaryRequest{
		Group1:        r.Group1,
		Group2:        r.Group2,
		BaseRate:      r.BaseRate,
		ThresholdProb: r.ThresholdProb,
		Config: empirical.Config{
			NBootstrap: r.NBootstrap,
			CILevel:    r.CILevel,
			Seed:       r.Seed,
			Workers:    r.Workers,
		},
	}
}

func (r empiricalContinuousRequest) toPort() ports.EmpiricalContinuousRequest {
	return ports.EmpiricalContinuousRequest{
		X:             r.X,
		Y:             r.Y,
		BaseRate:      r.BaseRate,
		ThresholdProb: r.ThresholdProb,
		Config: empirical.Config{
			NBootstrap: r.NBootstrap,
			CILevel:    r.CILevel,
			Seed:       r.Seed,
			Workers:    r.Workers,
		},
	}
}

func (r reliabilityShiftRequest) toDomain() empirical.ReliabilityShift {
	return empirical.ReliabilityShift{
		RCurrent:     r.RCurrent,
		RTarget:      r.RTarget,
		PerGroup:     r.PerGroup,
		R1Current:    r.R1Current,
		R1Target:     r.R1Target,
		R2Current:    r.R2Current,
		R2Target:     r.R2Target,
		KappaCurrent: r.KappaCurrent,
		KappaTarget:  r.KappaTarget,
		Center:       reliability.Center(r.Center),
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, errors.InvalidInput("request body is not valid JSON"))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, result interface{}, err error) {
	if err != nil {
		s.logger.Debug("request rejected: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidDomain, errors.CodeInvalidInput, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{
		"code":  errors.GetCode(err),
		"error": err.Error(),
	})
}
