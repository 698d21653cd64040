package reference

import "symptomcheck/domain/core/valueobjects"

// SymptomRule ties a lowercase keyword to candidate diagnoses and remedies
type SymptomRule struct {
	Keyword   string                     `json:"keyword"`
	Diagnoses []string                   `json:"diagnoses"`
	Remedies  []valueobjects.RemedyEntry `json:"medicines"`
}

func remedy(name, description string) valueobjects.RemedyEntry {
	return valueobjects.NewRemedyEntry(name, description)
}

// symptomTable order is the match order: it decides which diagnosis and
// which remedy description is seen first for multi-keyword input.
var symptomTable = []SymptomRule{
	{
		Keyword:   "headache",
		Diagnoses: []string{"Tension Headache", "Migraine", "Dehydration"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Ibuprofen (Advil)", "Pain reliever and anti-inflammatory"),
			remedy("Acetaminophen (Tylenol)", "Pain reliever and fever reducer"),
			remedy("Aspirin", "Pain reliever"),
		},
	},
	{
		Keyword:   "fever",
		Diagnoses: []string{"Common Cold", "Flu", "Viral Infection"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Acetaminophen (Tylenol)", "Fever reducer and pain reliever"),
			remedy("Ibuprofen (Advil)", "Fever reducer and anti-inflammatory"),
		},
	},
	{
		Keyword:   "cough",
		Diagnoses: []string{"Common Cold", "Bronchitis", "Allergies"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Dextromethorphan (Robitussin)", "Cough suppressant"),
			remedy("Guaifenesin (Mucinex)", "Expectorant for chest congestion"),
			remedy("Honey & Lemon Throat Lozenges", "Soothes throat irritation"),
		},
	},
	{
		Keyword:   "sore throat",
		Diagnoses: []string{"Pharyngitis", "Common Cold", "Strep Throat"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Throat Lozenges", "Soothes throat pain"),
			remedy("Chloraseptic Spray", "Numbing throat spray"),
			remedy("Ibuprofen (Advil)", "Reduces inflammation and pain"),
		},
	},
	{
		Keyword:   "nausea",
		Diagnoses: []string{"Gastroenteritis", "Food Poisoning", "Motion Sickness"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Bismuth Subsalicylate (Pepto-Bismol)", "Relieves nausea and upset stomach"),
			remedy("Dramamine", "Motion sickness relief"),
			remedy("Ginger Chews", "Natural nausea relief"),
		},
	},
	{
		Keyword:   "congestion",
		Diagnoses: []string{"Common Cold", "Sinusitis", "Allergies"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Pseudoephedrine (Sudafed)", "Nasal decongestant"),
			remedy("Oxymetazoline (Afrin)", "Nasal spray decongestant"),
			remedy("Saline Nasal Spray", "Natural congestion relief"),
		},
	},
	{
		Keyword:   "stomach ache",
		Diagnoses: []string{"Indigestion", "Gastritis", "IBS"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Antacids (Tums)", "Neutralizes stomach acid"),
			remedy("Famotidine (Pepcid)", "Reduces stomach acid production"),
			remedy("Simethicone (Gas-X)", "Relieves gas and bloating"),
		},
	},
	{
		Keyword:   "diarrhea",
		Diagnoses: []string{"Gastroenteritis", "Food Poisoning", "IBS"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Loperamide (Imodium)", "Anti-diarrheal medication"),
			remedy("Bismuth Subsalicylate (Pepto-Bismol)", "Treats diarrhea and upset stomach"),
			remedy("Electrolyte Solution (Pedialyte)", "Prevents dehydration"),
		},
	},
	{
		Keyword:   "allergies",
		Diagnoses: []string{"Seasonal Allergies", "Hay Fever", "Allergic Rhinitis"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Cetirizine (Zyrtec)", "Antihistamine for allergies"),
			remedy("Loratadine (Claritin)", "Non-drowsy allergy relief"),
			remedy("Fexofenadine (Allegra)", "24-hour allergy relief"),
		},
	},
	{
		Keyword:   "muscle pain",
		Diagnoses: []string{"Muscle Strain", "Overexertion", "Fibromyalgia"},
		Remedies: []valueobjects.RemedyEntry{
			remedy("Ibuprofen (Advil)", "Anti-inflammatory pain reliever"),
			remedy("Naproxen (Aleve)", "Long-lasting pain relief"),
			remedy("Topical Pain Relief Cream", "Topical muscle pain relief"),
		},
	},
}

// Rules returns a deep copy of the symptom table in match order
func Rules() []SymptomRule {
	out := make([]SymptomRule, len(symptomTable))
	for i, r := range symptomTable {
		out[i] = r.clone()
	}
	return out
}

// Keywords returns the keywords in match order
func Keywords() []string {
	out := make([]string, len(symptomTable))
	for i, r := range symptomTable {
		out[i] = r.Keyword
	}
	return out
}

func (r SymptomRule) clone() SymptomRule {
	return SymptomRule{
		Keyword:   r.Keyword,
		Diagnoses: append([]string(nil), r.Diagnoses...),
		Remedies:  append([]valueobjects.RemedyEntry(nil), r.Remedies...),
	}
}
