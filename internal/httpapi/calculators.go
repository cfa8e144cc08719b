package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/finbr/brcalc/internal/breakeven"
	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/compare"
	"github.com/finbr/brcalc/internal/domain"
)

// CalculatorHandlers exposes the stateless calculators as JSON endpoints.
type CalculatorHandlers struct {
	engine  *calculation.CalculationEngine
	compare *compare.CompareEngine
	solver  *breakeven.Solver
	logger  *zap.Logger
}

// NewCalculatorHandlers constructs handlers backed by engine.
func NewCalculatorHandlers(engine *calculation.CalculationEngine, logger *zap.Logger) *CalculatorHandlers {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandlers{
		engine:  engine,
		compare: compare.NewCompareEngine(engine),
		solver:  breakeven.NewDefaultSolver(engine),
		logger:  logger,
	}
}

// Routes registers the calculator endpoints.
func (h *CalculatorHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/amortization", h.amortize)
	r.Post("/payroll", h.payroll)
	r.Post("/regime", h.regime)
	r.Post("/regime/mei-das", h.meiDAS)
	r.Post("/fgts", h.fgts)
	r.Post("/score", h.score)
	r.Route("/planner", func(pr chi.Router) {
		pr.Post("/emergency", h.emergency)
		pr.Post("/thirteenth", h.thirteenth)
		pr.Post("/vacation", h.vacation)
	})
	r.Route("/compare", func(cr chi.Router) {
		cr.Post("/regimes", h.compareRegimes)
		cr.Post("/loans", h.compareLoans)
	})
	r.Post("/break-even", h.breakEven)
}

type resultResponse struct {
	Result any `json:"result"`
}

type amortizationRequest struct {
	Principal     Amount  `json:"principal"`
	Months        Count   `json:"months"`
	AnnualRatePct Percent `json:"annual_rate_pct"`
	System        string  `json:"system"`
	Schedule      bool    `json:"schedule"`
}

type amortizationResponse struct {
	Result   domain.LoanResult    `json:"result"`
	Schedule []domain.Installment `json:"schedule,omitempty"`
}

func (h *CalculatorHandlers) amortize(w http.ResponseWriter, r *http.Request) {
	var req amortizationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	system, err := domain.ParseAmortizationSystem(req.System)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	in := domain.LoanInput{
		Principal:     req.Principal.Decimal(),
		Months:        int(req.Months),
		AnnualRatePct: req.AnnualRatePct.Decimal(),
		System:        system,
	}

	result, err := h.engine.Amortize(in)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	resp := amortizationResponse{Result: result}
	if req.Schedule {
		if resp.Schedule, err = h.engine.Schedule(in); err != nil {
			writeServiceError(r.Context(), w, h.logger, err)
			return
		}
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

type payrollRequest struct {
	GrossMonthly Amount `json:"gross_monthly"`
	Dependents   Count  `json:"dependents"`
}

func (h *CalculatorHandlers) payroll(w http.ResponseWriter, r *http.Request) {
	var req payrollRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result := h.engine.Payroll(domain.PayrollInput{
		GrossMonthly: req.GrossMonthly.Decimal(),
		Dependents:   int(req.Dependents),
	})
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: result})
}

type regimeRequest struct {
	Regime         string `json:"regime"`
	MonthlyRevenue Amount `json:"monthly_revenue"`
	Payroll        Amount `json:"payroll"`
	Activity       string `json:"activity"`
}

func (h *CalculatorHandlers) regime(w http.ResponseWriter, r *http.Request) {
	var req regimeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	regime, err := domain.ParseRegime(req.Regime)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	activity, err := parseOptionalActivity(req.Activity)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	result, err := h.engine.EstimateRegime(domain.RegimeInput{
		Regime:         regime,
		MonthlyRevenue: req.MonthlyRevenue.Decimal(),
		Payroll:        req.Payroll.Decimal(),
		Activity:       activity,
	})
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: result})
}

type meiDASRequest struct {
	Activity string `json:"activity"`
}

func (h *CalculatorHandlers) meiDAS(w http.ResponseWriter, r *http.Request) {
	var req meiDASRequest
	if !decodeBody(w, r, &req) {
		return
	}
	activity, err := parseOptionalActivity(req.Activity)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	das, err := h.engine.MEIFixedDAS(activity)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: map[string]any{"monthly_das": das}})
}

type fgtsRequest struct {
	Balance Amount `json:"balance"`
}

func (h *CalculatorHandlers) fgts(w http.ResponseWriter, r *http.Request) {
	var req fgtsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	balance := req.Balance.Decimal()
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: map[string]any{
		"balance":    balance,
		"withdrawal": h.engine.FGTSWithdrawal(balance),
	}})
}

type scoreRequest struct {
	Score Amount `json:"score"`
}

func (h *CalculatorHandlers) score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: calculation.ClassifyCreditScore(req.Score.Decimal())})
}

type emergencyRequest struct {
	MonthlyCost Amount `json:"monthly_cost"`
	Months      Count  `json:"months"`
}

func (h *CalculatorHandlers) emergency(w http.ResponseWriter, r *http.Request) {
	var req emergencyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: map[string]any{
		"reserve": calculation.EmergencyReserve(req.MonthlyCost.Decimal(), int(req.Months)),
	}})
}

type thirteenthRequest struct {
	GrossMonthly Amount `json:"gross_monthly"`
}

func (h *CalculatorHandlers) thirteenth(w http.ResponseWriter, r *http.Request) {
	var req thirteenthRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: calculation.ThirteenthSalary(req.GrossMonthly.Decimal())})
}

type vacationRequest struct {
	GrossMonthly Amount  `json:"gross_monthly"`
	Pct          Percent `json:"pct"`
}

func (h *CalculatorHandlers) vacation(w http.ResponseWriter, r *http.Request) {
	var req vacationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: map[string]any{
		"monthly_reserve": calculation.VacationReserve(req.GrossMonthly.Decimal(), req.Pct.Decimal()),
	}})
}

type compareRegimesRequest struct {
	Base           string   `json:"base"`
	Regimes        []string `json:"regimes"`
	MonthlyRevenue Amount   `json:"monthly_revenue"`
	Payroll        Amount   `json:"payroll"`
	Activity       string   `json:"activity"`
}

func (h *CalculatorHandlers) compareRegimes(w http.ResponseWriter, r *http.Request) {
	var req compareRegimesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	opts := compare.RegimeOptions{
		MonthlyRevenue: req.MonthlyRevenue.Decimal(),
		Payroll:        req.Payroll.Decimal(),
	}
	var err error
	if opts.Activity, err = parseOptionalActivity(req.Activity); err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	if req.Base != "" {
		if opts.BaseRegime, err = domain.ParseRegime(req.Base); err != nil {
			writeServiceError(r.Context(), w, h.logger, err)
			return
		}
	}
	for _, name := range req.Regimes {
		regime, err := domain.ParseRegime(name)
		if err != nil {
			writeServiceError(r.Context(), w, h.logger, err)
			return
		}
		opts.Regimes = append(opts.Regimes, regime)
	}

	compSet, err := h.compare.CompareRegimes(opts)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: compSet})
}

type compareLoansRequest struct {
	Principal     Amount  `json:"principal"`
	Months        Count   `json:"months"`
	AnnualRatePct Percent `json:"annual_rate_pct"`
}

func (h *CalculatorHandlers) compareLoans(w http.ResponseWriter, r *http.Request) {
	var req compareLoansRequest
	if !decodeBody(w, r, &req) {
		return
	}
	lc, err := h.compare.CompareLoanSystems(req.Principal.Decimal(), int(req.Months), req.AnnualRatePct.Decimal())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: lc})
}

type breakEvenRequest struct {
	A          string `json:"a"`
	B          string `json:"b"`
	Activity   string `json:"activity"`
	Payroll    Amount `json:"payroll"`
	MinRevenue Amount `json:"min_revenue"`
	MaxRevenue Amount `json:"max_revenue"`
}

func (h *CalculatorHandlers) breakEven(w http.ResponseWriter, r *http.Request) {
	var req breakEvenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a, err := domain.ParseRegime(req.A)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	b, err := domain.ParseRegime(req.B)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	activity, err := parseOptionalActivity(req.Activity)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	result, err := h.solver.Solve(r.Context(), breakeven.Request{
		A:          a,
		B:          b,
		Activity:   activity,
		Payroll:    req.Payroll.Decimal(),
		MinRevenue: req.MinRevenue.Decimal(),
		MaxRevenue: req.MaxRevenue.Decimal(),
	})
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, resultResponse{Result: result})
}

// parseOptionalActivity leaves an empty activity for the engine to default.
func parseOptionalActivity(v string) (domain.Activity, error) {
	if v == "" {
		return "", nil
	}
	return domain.ParseActivity(v)
}
