package locale_test

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/wizard"
)

// catalogueKeys lists every message id the code base references.
func catalogueKeys() []string {
	keys := []string{
		config.TKeyAppTitle,
		config.TKeyStepWelcome, config.TKeyStepRegistration, config.TKeyStepSubscription,
		config.TKeyStepPayment, config.TKeyStepProfile, config.TKeyStepJourney,
		config.TKeyWelcomeText, config.TKeyPaymentText, config.TKeyProfileGreeting, config.TKeyJourneyLocked,
		config.TKeyLblName, config.TKeyLblBirthDate, config.TKeyLblReferenceDate,
		config.TKeyLblDate, config.TKeyLblPlanet, config.TKeyLblActivities,
		config.TKeyLblContact, config.TKeyLblValue, config.TKeyPlaceholderDate,
		config.TKeyLblSlot, config.TKeyLblCount, config.TKeyLblNextBirthday, config.TKeyLblAge,
		config.TKeyBtnNext, config.TKeyBtnBack, config.TKeyBtnRestart, config.TKeyBtnPay,
		config.TKeyErrDateFormat, config.TKeyErrNameRequired, config.TKeyErrTierRequired, config.TKeyErrIncomplete,
		config.TKeyNumWorking, config.TKeyNumSoul, config.TKeyNumMind, config.TKeyNumDestiny,
		config.TKeyNumMind2, config.TKeyNumWisdom, config.TKeyNumLifePath, config.TKeyNumRuling,
		config.TKeyNumProblem, config.TKeyNumIndividual, config.TKeyNumProblemCycle,
		config.TKeyLblSquare, config.TKeyLblStrength, config.TKeyLblCharacter,
		config.TKeyLblStability, config.TKeyLblSpiritual, config.TKeyLblFavorability,
		config.TKeyDaySummary, config.TKeyPriceFree,
	}

	for _, p := range numerology.SquarePlanets[1:] {
		keys = append(keys, p.Key)
	}
	for _, p := range favorability.Planets[1:] {
		keys = append(keys, p.Key)
		for _, a := range append(p.Activities(true), p.Activities(false)...) {
			keys = append(keys, a.ID)
		}
	}
	for _, p := range wizard.Plans {
		keys = append(keys, p.Key)
	}
	return keys
}

// TestCatalogueIntegrity ensures every referenced key exists in every catalogue.
func TestCatalogueIntegrity(t *testing.T) {
	keys := catalogueKeys()

	for _, lang := range []string{"en", "fr"} {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(fmt.Sprintf("locales/active.%s.json", lang))
			require.NoError(t, err)

			var catalogue map[string]string
			require.NoError(t, json.Unmarshal(content, &catalogue), "catalogue must be valid JSON")

			for _, key := range keys {
				_, ok := catalogue[key]
				assert.Truef(t, ok, "key %q is missing in active.%s.json", key, lang)
			}
		})
	}
}

// TestActivityDefaults_MatchEnglish keeps the in-code fallbacks aligned with the catalogue.
func TestActivityDefaults_MatchEnglish(t *testing.T) {
	tr := locale.New("en")
	for _, p := range favorability.Planets[1:] {
		for _, a := range append(p.Activities(true), p.Activities(false)...) {
			assert.Equal(t, a.Default, tr.Activity(a), a.ID)
		}
	}
}

func TestTranslator_Languages(t *testing.T) {
	tr := locale.New("fr")
	assert.ElementsMatch(t, []string{"en", "fr"}, tr.Languages)
	assert.Equal(t, "fr", tr.Language())
	assert.Equal(t, "Soleil", tr.Msg("planet_sun"))

	tr.SetLanguage("xx")
	assert.Equal(t, config.DefaultLanguage, tr.Language())
	assert.Equal(t, "Sun", tr.Msg("planet_sun"))
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr := locale.New("en")
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"))
	assert.Equal(t, "fallback", tr.MsgOr("no_such_key", "fallback"))

	var nilTr *locale.Translator
	assert.Equal(t, "fallback", nilTr.MsgOr("planet_sun", "fallback"))
	assert.Equal(t, config.DefaultLanguage, nilTr.Language())
}

func TestTranslator_Format(t *testing.T) {
	tr := locale.New("en")
	got := tr.Format(config.TKeyDaySummary, "", map[string]any{"Planet": "Moon", "Rating": 9})
	assert.Equal(t, "Moon day, favorability 9/10", got)
}

func TestTranslator_Error(t *testing.T) {
	tr := locale.New("en")

	_, err := numerology.Compute("1982-01-10", "01.01.2000")
	assert.Equal(t, "Please enter the date as DD.MM.YYYY.", tr.Error(err))

	_, err = wizard.Next(wizard.Session{State: wizard.Registration})
	assert.Equal(t, "Please enter your name.", tr.Error(err))

	_, err = wizard.Next(wizard.Session{State: wizard.Subscription})
	assert.Equal(t, "Please choose a plan.", tr.Error(err))

	assert.Empty(t, tr.Error(nil))
}
