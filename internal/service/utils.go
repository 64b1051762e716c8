package service

import (
	cognitoclient "insuretrack/internal/infrastructure/aws/cognito"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// handleUserSignup wraps the Cognito signup, returning the new sub
// UUID and a revert closure that undoes the IDP side if our own
// persistence fails afterwards.
func handleUserSignup(cognito cognitoclient.CognitoInterface, user *cognitoclient.User) (string, apierror.ErrorResponse, func()) {
	sub, err := cognito.SignUp(user)
	if err != nil {
		return "", utils.MapCognitoError(err), nil
	}

	revert := func() {
		// Cognito has no client-side "unsign-up"; the orphaned IDP user
		// stays unconfirmed and expires on its own. Log it so support
		// can clean up manually if needed.
		log.Warnf("orphaned cognito signup for %s after local persistence failure", user.Email)
	}
	return sub, nil, revert
}

func handleUserSignin(cognito cognitoclient.CognitoInterface, credentials *cognitoclient.UserLogin) (*cognitoclient.AuthCreate, apierror.ErrorResponse) {
	auth, err := cognito.SignIn(credentials)
	if err != nil {
		return nil, utils.MapCognitoError(err)
	}
	return auth, nil
}

func handleSignupConfirmation(cognito cognitoclient.CognitoInterface, confirms *cognitoclient.UserConfirmation) apierror.ErrorResponse {
	if err := cognito.ConfirmAccount(confirms); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}
