package analysis

// Prompt templates for the two operations. Both share the same assistant
// persona; they differ only in the user instruction and the embedded data.
const (
	questionsSystemPrompt = `Ты помощник для тестирования и борьбы с выгоранием сотрудников, ` +
		`используй эти данные для генерации вопросов, 1 вопрос на каждый симптом, ` +
		`в сумме по каждому признаку должно быть 4 вопроса, ещё 3 вопроса для проверки ` +
		`правдоподобности ответов, общее количество вопросов - 15. Симптомы: %s. ` +
		`На все вопросы можно ответить: да/нет (не писать об этом в вопросе).`

	questionsUserPrompt = `Выбери вопросы и переформулируй их, выведи списком (формат [] для python) вопросы, ` +
		`сначала по порядку вопросы по признакам: напряжение, резистенция, истощение, ` +
		`затем вопросы для правдоподобности.`

	analysisSystemPrompt = `Ты помощник для тестирования и борьбы с выгоранием сотрудников.`

	analysisUserPrompt = `Проанализируй данные о сотруднике %s, как думаешь, есть ли у него выгорание, ` +
		`ответ должен быть не более 5 предложений, выведи все структурированно, ` +
		`под полями Тренд, Рекомендации (Пиши с контекстом: советую порекомендовать...), Прогноз.`
)
