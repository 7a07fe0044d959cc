package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/crm-analytics-api/pkg/utils"
)

// ListExpenses lista todas as despesas registradas
func ListExpenses(repo repository.ExpenseRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := repo.List()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar despesas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(expenses); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// CreateExpense registra uma nova despesa
func CreateExpense(repo repository.ExpenseRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateExpense")

		var expense domain.ExpenseRecord
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if expense.Amount < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor da despesa não pode ser negativo", nil)
			return
		}

		if expense.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
				return
			}
			expense.ID = id
		}

		if err := repo.Create(&expense); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar despesa", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(expense); err != nil {
			logrus.Error(err)
		}
	}
}

// ListPayments lista todos os pagamentos registrados
func ListPayments(repo repository.PaymentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payments, err := repo.List()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar pagamentos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payments); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// CreatePayment registra um novo pagamento
func CreatePayment(repo repository.PaymentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreatePayment")

		var payment domain.PaymentRecord
		if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if payment.Amount < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor do pagamento não pode ser negativo", nil)
			return
		}

		if payment.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
				return
			}
			payment.ID = id
		}

		if payment.Status == "" {
			payment.Status = domain.PaymentStatusPending
		}

		if err := repo.Create(&payment); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar pagamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(payment); err != nil {
			logrus.Error(err)
		}
	}
}

// ListBudgets lista todos os orçamentos por categoria
func ListBudgets(repo repository.BudgetRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgets, err := repo.List()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar orçamentos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(budgets); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// SaveBudget cria ou atualiza um orçamento
func SaveBudget(repo repository.BudgetRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SaveBudget")

		var budget domain.BudgetRecord
		if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if budget.AllocatedAmount < 0 || budget.SpentAmount < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valores do orçamento não podem ser negativos", nil)
			return
		}

		if budget.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
				return
			}
			budget.ID = id
		}

		if err := repo.SaveOrUpdate(&budget); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar orçamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(budget); err != nil {
			logrus.Error(err)
		}
	}
}
