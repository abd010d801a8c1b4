// Package recommend turns scored articles into concrete suggested actions
// for individual businesses, driven by a per-event-type template catalog.
package recommend

import (
	"github.com/andres/news-radar/internal/types"
)

// effortNormalizer converts estimated hours into the [0, 1] effort score.
const effortNormalizer = 20.0

// Template is a reusable recommendation blueprint. Phrasing stays generic:
// actions name a category ("increase beverage stock"), never a magnitude,
// because the system has no inventory or staffing data to size them with.
type Template struct {
	Key             string
	Title           string
	Description     string
	ActionType      string
	Category        string
	CompatibleTypes []string // empty means any business type
	PriorityByScale map[types.EventScale]types.Priority
	DefaultPriority types.Priority
	DaysThreshold   int // skip when the event is further out than this
	EffortHours     int
}

// compatibleWith reports whether the template applies to a business type.
func (t *Template) compatibleWith(typeCode string) bool {
	if len(t.CompatibleTypes) == 0 {
		return true
	}
	for _, c := range t.CompatibleTypes {
		if c == typeCode {
			return true
		}
	}
	return false
}

// priorityFor resolves the base priority for an event scale.
func (t *Template) priorityFor(scale types.EventScale) types.Priority {
	if p, ok := t.PriorityByScale[scale]; ok {
		return p
	}
	if t.DefaultPriority != "" {
		return t.DefaultPriority
	}
	return types.PriorityMedium
}

var hospitality = []string{types.TypePub, types.TypeRestaurant, types.TypeCoffeeShop}

// templatesByEvent is the catalog, keyed by event type. Unknown event types
// simply yield no recommendations.
var templatesByEvent = map[string][]Template{
	types.EventSportsMatch: {
		{
			Key:         "sports_promo",
			Title:       "Campaña especial para el evento deportivo",
			Description: "Crear una promoción alrededor del partido para atraer a los aficionados antes y después del evento.",
			ActionType:  "create_promotion", Category: types.CategoryMarketing,
			CompatibleTypes: hospitality,
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityUrgent,
				types.ScaleLarge:   types.PriorityHigh,
				types.ScaleMedium:  types.PriorityMedium,
				types.ScaleSmall:   types.PriorityLow,
			},
			DaysThreshold: 14, EffortHours: 12,
		},
		{
			Key:         "sports_inventory",
			Title:       "Aumentar inventario de bebidas para el evento",
			Description: "El evento deportivo elevará la demanda de bebidas. Contactar proveedores con anticipación.",
			ActionType:  "increase_inventory", Category: types.CategoryInventory,
			CompatibleTypes: []string{types.TypePub, types.TypeRestaurant},
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityUrgent,
				types.ScaleLarge:   types.PriorityHigh,
				types.ScaleMedium:  types.PriorityMedium,
			},
			DefaultPriority: types.PriorityLow,
			DaysThreshold:   7, EffortHours: 6,
		},
		{
			Key:         "sports_staffing",
			Title:       "Reforzar personal para el día del evento",
			Description: "El volumen de clientes será excepcional durante el evento. Planificar turnos adicionales.",
			ActionType:  "hire_staff", Category: types.CategoryStaffing,
			CompatibleTypes: hospitality,
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityHigh,
				types.ScaleLarge:   types.PriorityHigh,
			},
			DaysThreshold: 7, EffortHours: 3,
		},
	},
	types.EventConcert: {
		{
			Key:         "concert_promo",
			Title:       "Promoción pre y post concierto",
			Description: "Ofrecer una experiencia para el público antes y después del concierto.",
			ActionType:  "create_promotion", Category: types.CategoryMarketing,
			CompatibleTypes: hospitality,
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityHigh,
			},
			DaysThreshold: 14, EffortHours: 8,
		},
		{
			Key:         "concert_hours",
			Title:       "Extender horario de atención por el concierto",
			Description: "Considerar abrir más tarde el día del evento para captar la salida del público.",
			ActionType:  "adjust_hours", Category: types.CategoryOperations,
			CompatibleTypes: []string{types.TypePub, types.TypeRestaurant},
			DaysThreshold:   7, EffortHours: 2,
		},
	},
	types.EventMarathon: {
		{
			Key:         "marathon_hydration",
			Title:       "Aumentar inventario de hidratación",
			Description: "La carrera elevará la demanda de bebidas hidratantes y agua en la zona.",
			ActionType:  "increase_inventory", Category: types.CategoryInventory,
			CompatibleTypes: hospitality,
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityHigh,
				types.ScaleLarge:   types.PriorityHigh,
			},
			DaysThreshold: 7, EffortHours: 4,
		},
		{
			Key:         "marathon_menu",
			Title:       "Menú especial para corredores",
			Description: "Ofrecer opciones saludables y desayunos tempranos el día de la carrera.",
			ActionType:  "menu_modification", Category: types.CategoryOperations,
			CompatibleTypes: []string{types.TypeRestaurant, types.TypeCoffeeShop},
			DaysThreshold:   14, EffortHours: 8,
		},
	},
	types.EventFoodEvent: {
		{
			Key:         "food_inventory",
			Title:       "Preparar inventario para mayor afluencia",
			Description: "El evento gastronómico atraerá visitantes a la zona. Asegurar inventario suficiente.",
			ActionType:  "increase_inventory", Category: types.CategoryInventory,
			CompatibleTypes: hospitality,
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityUrgent,
				types.ScaleLarge:   types.PriorityHigh,
				types.ScaleMedium:  types.PriorityMedium,
				types.ScaleSmall:   types.PriorityLow,
			},
			DaysThreshold: 7, EffortHours: 6,
		},
		{
			Key:         "food_promo",
			Title:       "Promoción ligada al evento gastronómico",
			Description: "Sumarse a la conversación del evento con una oferta propia.",
			ActionType:  "create_promotion", Category: types.CategoryMarketing,
			CompatibleTypes: []string{types.TypeRestaurant, types.TypeCoffeeShop},
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityHigh,
			},
			DaysThreshold: 14, EffortHours: 8,
		},
		{
			Key:         "food_partnership",
			Title:       "Evaluar participación en el evento",
			Description: "Oportunidad de visibilidad y contactos con el sector.",
			ActionType:  "partner_collaboration", Category: types.CategoryPartnerships,
			CompatibleTypes: hospitality,
			DefaultPriority: types.PriorityLow,
			DaysThreshold:   30, EffortHours: 20,
		},
	},
	types.EventFestival: {
		{
			Key:         "festival_promo",
			Title:       "Promoción temática del festival",
			Description: "Alinear la oferta del negocio con la programación del festival.",
			ActionType:  "create_promotion", Category: types.CategoryMarketing,
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityHigh,
			},
			DaysThreshold: 14, EffortHours: 8,
		},
		{
			Key:         "festival_staffing",
			Title:       "Planificar personal para los días del festival",
			Description: "El flujo de visitantes aumentará durante el festival.",
			ActionType:  "hire_staff", Category: types.CategoryStaffing,
			CompatibleTypes: hospitality,
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleMassive: types.PriorityHigh,
			},
			DaysThreshold: 7, EffortHours: 3,
		},
	},
	types.EventCultural: {
		{
			Key:         "cultural_tiein",
			Title:       "Actividad temática alrededor del evento cultural",
			Description: "Organizar una actividad propia conectada con el evento, como una tertulia o exhibición.",
			ActionType:  "create_event", Category: types.CategoryEvents,
			CompatibleTypes: []string{types.TypeBookstore, types.TypeCoffeeShop},
			PriorityByScale: map[types.EventScale]types.Priority{
				types.ScaleLarge: types.PriorityHigh,
			},
			DaysThreshold: 21, EffortHours: 10,
		},
		{
			Key:         "cultural_display",
			Title:       "Destacar material relacionado con el evento",
			Description: "Preparar una selección visible ligada al tema del evento cultural.",
			ActionType:  "create_promotion", Category: types.CategoryMarketing,
			CompatibleTypes: []string{types.TypeBookstore},
			DaysThreshold:   21, EffortHours: 4,
		},
	},
	types.EventNightlife: {
		{
			Key:         "nightlife_hours",
			Title:       "Ajustar horario para la noche del evento",
			Description: "Extender la atención mientras dure la actividad nocturna en la zona.",
			ActionType:  "adjust_hours", Category: types.CategoryOperations,
			CompatibleTypes: []string{types.TypePub},
			DaysThreshold:   7, EffortHours: 2,
		},
		{
			Key:         "nightlife_promo",
			Title:       "Promoción nocturna ligada al evento",
			Description: "Captar al público que circula por la zona durante el evento.",
			ActionType:  "create_promotion", Category: types.CategoryMarketing,
			CompatibleTypes: []string{types.TypePub},
			DaysThreshold:   14, EffortHours: 6,
		},
	},
}

// TemplatesFor exposes the catalog entries for one event type, mainly for
// inspection tooling.
func TemplatesFor(eventType string) []Template {
	return templatesByEvent[eventType]
}
