package analysis

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector - мок-реализация клиента анализа для локальной разработки
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// GenerateQuestions - мок генерации вопросов: фиксированный список из 15
// вопросов в порядке напряжение → резистенция → истощение → правдоподобность
func (m *MockConnector) GenerateQuestions(ctx context.Context) ([]string, error) {
	ctxzap.Info(ctx, "[MOCK] generating survey questions")

	questions := []string{
		// Напряжение
		"Чувствуете ли вы постоянное напряжение на работе?",
		"Бывает ли у вас ощущение, что рабочие проблемы не отпускают даже дома?",
		"Часто ли вы недовольны собой и результатами своей работы?",
		"Испытываете ли вы тревогу при мысли о предстоящем рабочем дне?",
		// Резистенция
		"Стали ли вы реагировать на коллег более раздражительно, чем раньше?",
		"Замечаете ли вы, что экономите эмоции в общении с людьми?",
		"Сокращаете ли вы рабочие обязанности, которые требуют эмоциональной отдачи?",
		"Бывает ли вам безразлично качество вашей работы?",
		// Истощение
		"Чувствуете ли вы эмоциональное опустошение в конце рабочего дня?",
		"Стало ли вам трудно сопереживать коллегам и клиентам?",
		"Ощущаете ли вы физическое недомогание без видимых причин?",
		"Хочется ли вам дистанцироваться от всех рабочих контактов?",
		// Правдоподобность
		"Вы когда-нибудь опаздывали на работу?",
		"Бывало ли, что вы откладывали неприятную задачу?",
		"Всегда ли вы отвечаете на рабочие сообщения мгновенно?",
	}

	ctxzap.Info(ctx, "[MOCK] survey questions generated", zap.Int("count", len(questions)))
	return questions, nil
}

// GenerateAnalysis - мок анализа сотрудника
func (m *MockConnector) GenerateAnalysis(ctx context.Context, employeeSummary string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating burnout analysis",
		zap.Int("summary_length", len(employeeSummary)),
	)

	analysis := `Тренд: производительность сотрудника стабильна, признаков резкого спада нет.
Рекомендации: советую порекомендовать сотруднику запланировать отпуск и снизить количество переработок.
Прогноз: при сохранении текущей нагрузки риск выгорания остаётся низким. (MOCK)`

	return analysis, nil
}
