package assistant

import "strings"

const (
	greeting  = "¡Hola! Soy tu asistente financiero Finko. ¿Con qué te puedo ayudar hoy?"
	fallback  = "No entendí tu pregunta. ¿Podrías reformularla?"
	apologies = "Lo siento, no pude procesar tu solicitud en este momento."
)

// cannedReplies are matched in order against the lowercased message.
var cannedReplies = []struct {
	keyword string
	reply   string
}{
	{"hola", "¡Hola! ¿En qué puedo ayudarte?"},
	{"adios", "¡Hasta luego! Que tengas un buen día."},
	{"gasto e ingreso", "Ingresos: es el dinero que entra a tu cuenta, por ejemplo, tu sueldo. Los gastos son todas las salidas de dinero que tienes al pagar servicios (luz, gas, agua) y bienes (comida, vestimenta, etc.). Pero estos ingresos y gastos pueden ser (ambos) fijos y variables."},
	{"invertir", "Invertir es poner tu dinero en algún tipo de activo (como acciones, bonos o bienes raíces) con la expectativa de que genere ganancias o aumente su valor con el tiempo. ¿Te gustaría saber más sobre algún tipo específico de inversión?"},
	{"ahorro", "El ahorro es la porción de tus ingresos que decides no gastar inmediatamente, reservándola para necesidades futuras, emergencias o para alcanzar metas financieras. Es el primer paso hacia la inversión."},
	{"presupuesto", "Un presupuesto es un plan que te ayuda a controlar tus ingresos y gastos. Te permite ver a dónde va tu dinero y tomar decisiones informadas para alcanzar tus objetivos financieros. ¿Quieres que te ayude a crear uno?"},
	{"gracias", "¡De nada! Estoy aquí para ayudarte."},
}

// CannedReply answers from the keyword table, or asks the learner to
// rephrase when nothing matches.
func CannedReply(text string) string {
	lower := strings.ToLower(text)
	for _, c := range cannedReplies {
		if strings.Contains(lower, c.keyword) {
			return c.reply
		}
	}
	return fallback
}
