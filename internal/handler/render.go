package handler

import (
	"fmt"
	"html"
	"strings"

	"wordquiz/internal/domain"
	"wordquiz/internal/quiz"
	"wordquiz/internal/service"
)

// renderSegments renders a diff side as HTML with mismatches underlined
func renderSegments(segments []quiz.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		text := html.EscapeString(s.Text)
		if s.Match {
			b.WriteString(text)
			continue
		}
		b.WriteString("<u>")
		b.WriteString(text)
		b.WriteString("</u>")
	}
	return b.String()
}

func renderWordList(entries []domain.VocabEntry, pageKey string, maxRows, limit int) string {
	var b strings.Builder
	if pageKey == "" {
		b.WriteString("📚 Все слова")
	} else {
		fmt.Fprintf(&b, "📚 Страница %s", html.EscapeString(pageKey))
	}
	fmt.Fprintf(&b, " (%d)\n\n", len(entries))

	if len(entries) == 0 {
		b.WriteString("Здесь пока пусто. Нажми «Добавить слово».")
		return b.String()
	}

	for i, e := range entries {
		line := fmt.Sprintf("%s #%d <b>%s</b> — %s", learnedIcon(e.Learned), e.ID,
			html.EscapeString(e.Word), html.EscapeString(e.Translation))
		if t := strings.TrimSpace(e.Transcription); t != "" {
			line += " <i>" + html.EscapeString(t) + "</i>"
		}
		line += "\n"

		if i == maxRows || b.Len()+len(line) > limit {
			fmt.Fprintf(&b, "\n… и ещё %d", len(entries)-i)
			break
		}
		b.WriteString(line)
	}
	b.WriteString("\nНажми на слово, чтобы отметить его выученным.")
	return b.String()
}

func directionLabel(dir domain.Direction, langs Languages) string {
	from, to := strings.ToUpper(langs.Word), strings.ToUpper(langs.Translation)
	if dir == domain.TranslationToWord {
		from, to = to, from
	}
	return from + " → " + to
}

func renderQuizSetup(state *domain.StateData, langs Languages) string {
	format := "ввод ответа"
	if state.QuizFormat == domain.FormatChoice {
		format = "выбор из вариантов"
	}
	pages := "все"
	if len(state.QuizPages) > 0 {
		pages = html.EscapeString(strings.Join(state.QuizPages, ", "))
	}
	return fmt.Sprintf("🎯 Тест\n\nФормат: %s\nНаправление: %s\nСтраницы: %s",
		format, directionLabel(state.QuizDirection, langs), pages)
}

func renderQuestion(session service.Session) string {
	q := session.Current()

	var b strings.Builder
	fmt.Fprintf(&b, "Вопрос %d из %d\n\n<b>%s</b>\n\n",
		session.Index+1, len(session.Questions), html.EscapeString(strings.TrimSpace(q.Prompt)))

	switch {
	case session.Format == domain.FormatChoice:
		b.WriteString("Выбери перевод:")
	case q.Kind == domain.KindNoun && q.Show == domain.ShowWord:
		b.WriteString("Напиши перевод (артикль можно не писать):")
	case q.Kind == domain.KindVerb && q.Show == domain.ShowWord:
		b.WriteString("Напиши перевод (to можно не писать):")
	default:
		b.WriteString("Напиши перевод:")
	}
	return b.String()
}

func renderFeedback(session service.Session) string {
	fb := session.Feedback
	if fb == nil {
		return renderQuestion(session)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", html.EscapeString(strings.TrimSpace(fb.Prompt)))

	if fb.Correct() {
		fmt.Fprintf(&b, "✅ Верно! %s", html.EscapeString(fb.Expected))
	} else {
		b.WriteString("❌ Неверно\n\n")
		if fb.Diff != nil {
			fmt.Fprintf(&b, "Правильно: %s\nТвой ответ: %s",
				renderSegments(fb.Diff.Expected), renderSegments(fb.Diff.Actual))
		} else {
			fmt.Fprintf(&b, "Правильно: %s\nТвой ответ: %s",
				html.EscapeString(fb.Expected), html.EscapeString(fb.Answer))
		}
	}
	if fb.RequiresCaseMatch {
		b.WriteString("\n\nℹ️ Это слово пишется с заглавной буквы")
	}

	fmt.Fprintf(&b, "\n\nСчёт: %d из %d", session.Score, len(session.Questions))
	return b.String()
}

func renderResult(result service.Result) string {
	icon := "🏁"
	if result.Total > 0 && result.Score == result.Total {
		icon = "🏆"
	}
	return fmt.Sprintf("%s Тест окончен\n\nПравильных ответов: %d из %d (%d%%)",
		icon, result.Score, result.Total, result.Percent)
}
