// Package domain models the AURA Sentinel emergency-assistance decision flow.
//
// # Request Flow
//
// A single incoming report carries free text, an optional geolocation, an
// optional medical profile, and a panic flag. The orchestrator fuses three
// independent model signals (intent, emergency type, and profile action)
// with a static decision policy and the facility resolver into exactly one
// Decision per request.
//
// # Label Vocabularies
//
// All user-facing labels are Spanish, matching the deployed model exports:
//
//	Intents:         saludo, despedida, solicitud_calma, consulta_general,
//	                 informacion_emergencia
//	Emergency types: medica, accidente, incendio, violencia,
//	                 crisis_emocional, otra
//	Facility types:  hospital, clinica, cruz_roja, bomberos, policia,
//	                 proteccion_civil, refugio, farmacia
//
// # Profile Feature Encoding
//
// The profile-action model consumes a fixed-order numeric vector:
//
//	[edad, tiene_alergias, condicion_cronica, toma_medicamentos,
//	 O+, O-, A+, A-, B+, B-, AB+, AB-]
//
// Booleans are encoded 0/1 and the blood type is one-hot over the eight
// values in exactly that order. The order is part of the model contract;
// see [EmergencyProfile.FeatureVector].
//
// # Priority Levels
//
// Every Decision carries a priority annotation: "critical" for panic,
// "high" when an emergency type was confirmed, "normal" otherwise.
package domain
