package telegram

import (
	"fmt"
	"strings"

	"weekly-meal-planner/internal/metrics"
	"weekly-meal-planner/internal/plan"
)

// setMealRequest is a parsed "dia categoria: prato" message.
type setMealRequest struct {
	DayIndex     int
	CategoryID   string
	CategoryName string
	DishName     string
}

// dayAliases maps accent-free lowercase day spellings to day indexes, so
// "terca" and "sabado" work from any keyboard.
var dayAliases = map[string]int{
	"segunda": 0, "segunda-feira": 0,
	"terca": 1, "terça": 1, "terca-feira": 1, "terça-feira": 1,
	"quarta": 2, "quarta-feira": 2,
	"quinta": 3, "quinta-feira": 3,
	"sexta": 4, "sexta-feira": 4,
	"sabado": 5, "sábado": 5,
	"domingo": 6,
}

// parseSetMeal parses messages like "terça jantar: Strogonoff". The category
// is matched by name or id, case-insensitively.
func parseSetMeal(text string, categories []plan.MealCategory) (setMealRequest, bool) {
	head, dish, found := strings.Cut(text, ":")
	dish = strings.TrimSpace(dish)
	if !found || dish == "" {
		return setMealRequest{}, false
	}

	fields := strings.Fields(strings.TrimSpace(head))
	if len(fields) < 2 {
		return setMealRequest{}, false
	}

	day, ok := dayAliases[strings.ToLower(fields[0])]
	if !ok {
		return setMealRequest{}, false
	}

	wanted := strings.ToLower(strings.Join(fields[1:], " "))
	for _, cat := range categories {
		if strings.ToLower(cat.Name) == wanted || strings.ToLower(cat.ID) == wanted {
			return setMealRequest{
				DayIndex:     day,
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				DishName:     dish,
			}, true
		}
	}
	return setMealRequest{}, false
}

func helpMessage() string {
	var sb strings.Builder
	sb.WriteString("🍽 *Planejador de Refeições*\n\n")
	sb.WriteString("• /semana — plano da semana\n")
	sb.WriteString("• /compras — lista de compras\n")
	sb.WriteString("• /pdf — plano em PDF\n")
	sb.WriteString("• /status — uso e saúde do sistema\n\n")
	sb.WriteString("Para marcar uma refeição:\n`terça jantar: Strogonoff`\n\n")
	sb.WriteString("Para importar uma receita, envie a URL da página.")
	return sb.String()
}

func formatPlanMessage(data plan.AppData) string {
	var sb strings.Builder
	sb.WriteString("📅 *Plano da Semana*\n\n")

	empty := true
	for dayIndex, day := range plan.DaysOfWeek {
		var meals []string
		for _, cat := range data.Categories {
			if entry, ok := data.Plan[plan.Key(dayIndex, cat.ID)]; ok && entry.HasContent() {
				meals = append(meals, fmt.Sprintf("%s: %s", cat.Name, entry.DishName))
			}
		}
		if len(meals) == 0 {
			continue
		}
		empty = false
		sb.WriteString(fmt.Sprintf("*%s*\n", day))
		for _, m := range meals {
			sb.WriteString(fmt.Sprintf("• %s\n", m))
		}
		sb.WriteString("\n")
	}

	if empty {
		sb.WriteString("_Nenhuma refeição planejada ainda._")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatShoppingMessage(items []string) string {
	if len(items) == 0 {
		return "🛒 *Lista de Compras*\n\n_Nenhum item na lista._"
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Lista de Compras*\n\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s\n", item))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatImportedEntry(entry plan.MealEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ *Receita importada:* %s\n", entry.DishName))
	if len(entry.Ingredients) > 0 {
		sb.WriteString("\n🥕 *Ingredientes:*\n")
		for _, ing := range entry.Ingredients {
			if ing.Unit == plan.UnitToTaste {
				sb.WriteString(fmt.Sprintf("• %s (a gosto)\n", ing.Name))
			} else {
				sb.WriteString(fmt.Sprintf("• %g %s %s\n", ing.Quantity, ing.Unit, ing.Name))
			}
		}
	}
	sb.WriteString("\nUse `dia categoria: prato` para colocar no plano.")
	return sb.String()
}

func formatStatusMessage(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Uso e Saúde*\n\n")

	sb.WriteString("🗓 *Chamadas de IA recentes*\n")
	if len(usage) == 0 {
		sb.WriteString("_Sem dados ainda_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d chamadas (%d falhas)\n", d.Date, d.Calls, d.Failures))
	}

	sb.WriteString("\n🧠 *Sistema*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (alloc) / %dMB (sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Banco de dados: %s", health.DBSize))
	return sb.String()
}
