// Package reference holds the static condition and symptom tables the
// matcher reads. The tables are built once at package init and are only
// exposed through copying accessors.
package reference

import "symptomcheck/domain/core/valueobjects"

// UnknownConditionDescription is returned for names missing from the table
const UnknownConditionDescription = "No detailed description available."

// ConditionDetail describes a diagnosis
type ConditionDetail struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	DangerLevel valueobjects.DangerLevel `json:"danger"`
	Contagious  bool                     `json:"contagious"`
}

// ColorClass returns the style token for the condition's danger level
func (c ConditionDetail) ColorClass() string {
	return c.DangerLevel.ColorClass()
}

var conditionTable = []ConditionDetail{
	{
		Name:        "Tension Headache",
		Description: "The most common type of headache, causing mild to moderate pain that feels like a tight band around your head. Stress and muscle tension are common triggers.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Migraine",
		Description: "A potent headache that can cause severe throbbing pain or a pulsing sensation, usually on one side of the head. It is often accompanied by nausea, vomiting, and extreme sensitivity to light and sound.",
		DangerLevel: valueobjects.DangerModerate,
	},
	{
		Name:        "Dehydration",
		Description: "A condition caused by losing more fluid than you take in. It can lead to headaches, dizziness, and fatigue.",
		DangerLevel: valueobjects.DangerModerate,
	},
	{
		Name:        "Common Cold",
		Description: "A viral infection of your nose and throat (upper respiratory tract). It is usually harmless, although it might not feel that way.",
		DangerLevel: valueobjects.DangerLow,
		Contagious:  true,
	},
	{
		Name:        "Flu",
		Description: "Influenza is a viral infection that attacks your respiratory system. For most people, the flu resolves on its own, but sometimes its complications can be deadly.",
		DangerLevel: valueobjects.DangerModerate,
		Contagious:  true,
	},
	{
		Name:        "Viral Infection",
		Description: "A general term for an infection caused by a virus. Symptoms vary widely depending on the specific virus and the body system involved.",
		DangerLevel: valueobjects.DangerModerate,
		Contagious:  true,
	},
	{
		Name:        "Bronchitis",
		Description: "Inflammation of the lining of your bronchial tubes, which carry air to and from your lungs. It often causes a persistent cough with mucus.",
		DangerLevel: valueobjects.DangerModerate,
		Contagious:  true,
	},
	{
		Name:        "Allergies",
		Description: "An immune system response to a foreign substance that is not typically harmful to your body, such as pollen, pet dander, or certain foods.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Pharyngitis",
		Description: "Inflammation of the pharynx, which is in the back of the throat. It is most often referred to simply as a sore throat.",
		DangerLevel: valueobjects.DangerLow,
		Contagious:  true,
	},
	{
		Name:        "Strep Throat",
		Description: "A bacterial infection that can make your throat feel sore and scratchy. Untreated strep throat can lead to complications like kidney inflammation or rheumatic fever.",
		DangerLevel: valueobjects.DangerModerate,
		Contagious:  true,
	},
	{
		Name:        "Gastroenteritis",
		Description: `An intestinal infection marked by watery diarrhea, abdominal cramps, nausea or vomiting, and sometimes fever. Often called the "stomach flu".`,
		DangerLevel: valueobjects.DangerModerate,
		Contagious:  true,
	},
	{
		Name:        "Food Poisoning",
		Description: "Illness caused by eating contaminated food. Infectious organisms or their toxins are the most common causes.",
		DangerLevel: valueobjects.DangerModerate,
	},
	{
		Name:        "Motion Sickness",
		Description: "A disturbance of the inner ear caused by repeated motion, leading to nausea and dizziness.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Sinusitis",
		Description: "A condition in which the cavities around the nasal passages become inflamed. It can be acute (short-term) or chronic.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Indigestion",
		Description: "Discomfort or pain in the upper abdomen, often after eating or drinking. It is not a disease but a symptom of other digestive problems.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Gastritis",
		Description: "Inflammation of the protective lining of the stomach. It can occur suddenly (acute) or develop slowly over time (chronic).",
		DangerLevel: valueobjects.DangerModerate,
	},
	{
		Name:        "IBS",
		Description: "Irritable Bowel Syndrome is a common disorder that affects the large intestine. Signs and symptoms include cramping, abdominal pain, bloating, gas, and diarrhea or constipation.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Seasonal Allergies",
		Description: "Also known as hay fever, this causes cold-like signs and symptoms, such as a runny nose, itchy eyes, congestion, sneezing and sinus pressure.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Hay Fever",
		Description: "An allergic response to outdoor or indoor allergens, such as pollen, dust mites, or tiny flecks of skin and saliva shed by cats, dogs, and other animals with fur or feathers.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Allergic Rhinitis",
		Description: "Diagnosis associated with a group of symptoms affecting the nose. These symptoms occur when you breathe in something you are allergic to, such as dust, animal dander, or pollen.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Muscle Strain",
		Description: "An injury to a muscle or a tendon — the fibrous tissue that connects muscles to bones. Minor injuries may only overstretch a muscle or tendon, while more severe injuries may involve partial or complete tears.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Overexertion",
		Description: "The state of being physically or mentally pushed beyond one's limits. It is a common cause of muscle pain and fatigue.",
		DangerLevel: valueobjects.DangerLow,
	},
	{
		Name:        "Fibromyalgia",
		Description: "A disorder characterized by widespread musculoskeletal pain accompanied by fatigue, sleep, memory and mood issues.",
		DangerLevel: valueobjects.DangerModerate,
	},
}

var conditionIndex = func() map[string]ConditionDetail {
	idx := make(map[string]ConditionDetail, len(conditionTable))
	for _, c := range conditionTable {
		idx[c.Name] = c
	}
	return idx
}()

// Describe returns the detail for a diagnosis name. Names that are not in the
// table, including the no-match sentinel, get a generic Unknown entry.
func Describe(name string) ConditionDetail {
	if c, ok := conditionIndex[name]; ok {
		return c
	}
	return ConditionDetail{
		Name:        name,
		Description: UnknownConditionDescription,
		DangerLevel: valueobjects.DangerUnknown,
		Contagious:  false,
	}
}

// IsKnownCondition reports whether name has an entry in the table
func IsKnownCondition(name string) bool {
	_, ok := conditionIndex[name]
	return ok
}

// Conditions returns a copy of the condition table in definition order
func Conditions() []ConditionDetail {
	out := make([]ConditionDetail, len(conditionTable))
	copy(out, conditionTable)
	return out
}
