package domain

import "time"

// Direções de tendência usadas pelo classificador
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// StageBucket agrupa clientes por estágio do funil
type StageBucket struct {
	Stage     string  `json:"stage"`
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	DealValue float64 `json:"deal_value"`
}

// MonthRevenue é uma entrada da série mensal de receita (período mm-yyyy)
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Deals   int     `json:"deals"`
}

// TopClient é uma entrada do ranking de clientes por valor de negócio
type TopClient struct {
	CompanyName string  `json:"company_name"`
	DealValue   float64 `json:"deal_value"`
	Deals       int     `json:"deals"`
}

// ActivityMetrics resume tarefas e eventos do período
type ActivityMetrics struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	OverdueTasks   int `json:"overdue_tasks"`
	UpcomingEvents int `json:"upcoming_events"`
}

// PerformanceMetrics resume o desempenho do processo de vendas
type PerformanceMetrics struct {
	AvgDealCycleDays float64 `json:"avg_deal_cycle_days"`
	SalesVelocity    float64 `json:"sales_velocity"`
}

// ForecastMetrics projeta a receita futura a partir do funil ativo
type ForecastMetrics struct {
	PipelineValue        float64 `json:"pipeline_value"`
	ProjectedRevenue     float64 `json:"projected_revenue"`
	ExpectedClosingDeals int     `json:"expected_closing_deals"`
}

// OwnerPerformance resume os negócios fechados por responsável
type OwnerPerformance struct {
	Owner   string  `json:"owner"`
	Revenue float64 `json:"revenue"`
	Deals   int     `json:"deals"`
}

// TeamMetrics resume o desempenho da equipe
type TeamMetrics struct {
	TopPerformer     string             `json:"top_performer"`
	ByOwner          []OwnerPerformance `json:"by_owner"`
	AvgDealsPerUser  float64            `json:"avg_deals_per_user"`
	TeamProductivity float64            `json:"team_productivity"`
}

// CategoryBucket agrupa valores financeiros por categoria
type CategoryBucket struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Amount   float64 `json:"amount"`
}

// FinanceMetrics resume despesas, pagamentos e orçamentos
type FinanceMetrics struct {
	TotalExpenses      float64          `json:"total_expenses"`
	ExpensesByCategory []CategoryBucket `json:"expenses_by_category"`
	TotalPaid          float64          `json:"total_paid"`
	TotalPending       float64          `json:"total_pending"`
	BudgetAllocated    float64          `json:"budget_allocated"`
	BudgetSpent        float64          `json:"budget_spent"`
	BudgetUtilization  float64          `json:"budget_utilization"`
}

// DashboardMetrics é o conjunto completo de métricas agregadas do painel
type DashboardMetrics struct {
	TotalClients   int                `json:"total_clients"`
	ActiveDeals    int                `json:"active_deals"`
	ClosedDeals    int                `json:"closed_deals"`
	TotalRevenue   float64            `json:"total_revenue"`
	ConversionRate float64            `json:"conversion_rate"`
	AvgDealValue   float64            `json:"avg_deal_value"`
	MonthlyGrowth  float64            `json:"monthly_growth"`
	ClientGrowth   float64            `json:"client_growth"`
	ClientsByStage []StageBucket      `json:"clients_by_stage"`
	RevenueByMonth []MonthRevenue     `json:"revenue_by_month"`
	TopClients     []TopClient        `json:"top_clients"`
	Activity       ActivityMetrics    `json:"activity"`
	Performance    PerformanceMetrics `json:"performance"`
	Forecast       ForecastMetrics    `json:"forecast"`
	Team           TeamMetrics        `json:"team"`
	Finance        FinanceMetrics     `json:"finance"`
}

// TrendSummary contém as classificações qualitativas derivadas das métricas
type TrendSummary struct {
	RevenueGrowth        string `json:"revenue_growth"`
	ClientGrowth         string `json:"client_growth"`
	Conversion           string `json:"conversion"`
	Activity             string `json:"activity"`
	BestPerformingStage  string `json:"best_performing_stage"`
	WorstPerformingStage string `json:"worst_performing_stage"`
	PeakRevenueMonth     string `json:"peak_revenue_month"`
}

// AnalyticsReport é a estrutura final montada pelo pipeline de análise
type AnalyticsReport struct {
	WindowDays         int              `json:"window_days"`
	GeneratedAt        time.Time        `json:"generated_at"`
	Metrics            DashboardMetrics `json:"metrics"`
	Trends             TrendSummary     `json:"trends"`
	RecommendedActions []string         `json:"recommended_actions"`
}

// ReportSnapshot é um relatório pré-calculado armazenado no banco
type ReportSnapshot struct {
	ID         int64            `json:"id"`
	WindowDays int              `json:"window_days"`
	Report     *AnalyticsReport `json:"report"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
