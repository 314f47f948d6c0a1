package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledger-calendar-bot/assistant/calendar"
	"github.com/ledger-calendar-bot/assistant/ledger"
)

// Reply is a message to send back to the chat
type Reply struct {
	Text string
	// Markdown marks the text as Telegram Markdown
	Markdown bool
}

const (
	financeFormatText  = "Não entendi o formato. Tente 'gasto 15 reais coxinha'."
	financeFailureText = "Ocorreu um erro ao registrar seu gasto. Por favor, tente novamente."

	scheduleFormatText  = "Não entendi o formato. Tente `agendar nome do evento amanhã às 14h`."
	invalidHourText     = "Não consegui entender a hora. Tente um formato como '14h'."
	scheduleFailureText = "Ocorreu um erro ao agendar o evento. Por favor, tente novamente."

	listFailureText = "Ocorreu um erro ao buscar seus eventos. Por favor, tente novamente."

	deleteFormatText  = "Não entendi qual evento excluir. Tente 'excluir evento reunião de amanhã'."
	deleteFailureText = "Ocorreu um erro ao tentar excluir o evento."

	renameFormatText  = "Não entendi o formato para editar. Tente `mudar nome do evento reunião para time meeting`."
	renameFailureText = "Ocorreu um erro ao tentar editar o evento."

	summaryEmptyText   = "Não consegui encontrar dados na sua planilha."
	summaryFailureText = "Ocorreu um erro ao consultar sua planilha. Por favor, tente novamente."
)

const helpText = `*Comandos Financeiros:*
- Para registrar um gasto, digite algo como: ` + "`gasto 15 reais coxinha`" + `
- Para registrar uma receita, digite: ` + "`ganhei 100 reais de bico`" + `

*Comandos de Agenda:*
- Para agendar um evento, digite: ` + "`agendar reunião amanhã às 10h`" + `
- Para listar eventos, digite: ` + "`eventos de hoje`" + ` ou ` + "`eventos de amanha`" + `
- Para editar um evento, digite: ` + "`mudar nome do evento reunião para time meeting`" + `
- Para excluir um evento, digite: ` + "`excluir evento reunião de amanhã`" + `

*Resumo Financeiro:*
- Para ver os totais do mês, digite: ` + "`total do mes`" + `

*Outros Comandos:*
- /start: Inicia a conversa com o bot.
- /ajuda: Mostra este menu de ajuda.`

// Greeting is the reply to /start
func Greeting(firstName string) *Reply {
	return plain(fmt.Sprintf("Olá %s! Sou seu bot financeiro e de agenda. Digite /ajuda para saber o que posso fazer.", firstName))
}

// Help is the reply to /ajuda
func Help() *Reply {
	return &Reply{Text: helpText, Markdown: true}
}

func plain(text string) *Reply {
	return &Reply{Text: text}
}

func transactionRecorded(record ledger.TransactionRecord) *Reply {
	return plain(fmt.Sprintf("%s de R$%s com '%s' na categoria '%s' registrado com sucesso!",
		record.Kind, record.Amount.StringFixed(2), record.Description, record.Category))
}

func eventScheduled(title string, at time.Time) *Reply {
	return plain(fmt.Sprintf("Evento '%s' agendado para %s às %sh.", title, at.Format("02/01/2006"), at.Format("15")))
}

func noEventsFound(label string) *Reply {
	return plain(fmt.Sprintf("Nenhum evento encontrado para %s.", label))
}

func eventList(label string, events []*calendar.Event, loc *time.Location) *Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "Seus eventos para %s:\n", label)
	for i, event := range events {
		fmt.Fprintf(&b, "*%d. %s* - %s\n", i+1, event.Summary, eventWhen(event, loc))
	}
	return &Reply{Text: b.String(), Markdown: true}
}

func eventWhen(event *calendar.Event, loc *time.Location) string {
	start, allDay, ok := calendar.StartTime(event, loc)
	switch {
	case !ok:
		return "sem horário"
	case allDay:
		return start.Format("02/01") + " (dia inteiro)"
	default:
		return start.Format("02/01 às 15:04")
	}
}

func deleteNotFound(title string) *Reply {
	return plain(fmt.Sprintf("Não encontrei nenhum evento com o nome '%s' para excluir.", title))
}

func eventDeleted(title string) *Reply {
	return plain(fmt.Sprintf("Evento '%s' excluído com sucesso!", title))
}

func renameNotFound(title string) *Reply {
	return plain(fmt.Sprintf("Não encontrei nenhum evento com o nome '%s'.", title))
}

func eventRenamed(oldTitle, newTitle string) *Reply {
	return plain(fmt.Sprintf("Nome do evento alterado de '%s' para '%s' com sucesso!", oldTitle, newTitle))
}

func monthlySummary(summary ledger.MonthlySummary) *Reply {
	return &Reply{
		Text: fmt.Sprintf("*Resumo do Mês:*\nTotal de Despesas: R$%s\nTotal de Receitas: R$%s\nSaldo: R$%s",
			summary.TotalExpense.StringFixed(2),
			summary.TotalIncome.StringFixed(2),
			summary.Balance.StringFixed(2)),
		Markdown: true,
	}
}
