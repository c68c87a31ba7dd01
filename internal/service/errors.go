package service

import (
	"fmt"

	apperrors "github.com/spec-kit/stargate-service/pkg/util/errorutil"
)

const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeDuplicateName  = "DUPLICATE_NAME"
	CodePersonNotFound = "PERSON_NOT_FOUND"
)

const (
	msgBadRequest     = "Bad Request"
	msgDuplicateName  = "Someone with this name already exists in the DB."
	msgNameTaken      = "Someone with that name already exists in the DB."
	msgPersonNotFound = "That person does not currently exist in the Database."
)

func errBadRequest() error {
	return apperrors.NewBusinessRuleError(CodeBadRequest, msgBadRequest)
}

func errDuplicateName() error {
	return apperrors.NewBusinessRuleError(CodeDuplicateName, msgDuplicateName)
}

func errNameTaken() error {
	return apperrors.NewBusinessRuleError(CodeDuplicateName, msgNameTaken)
}

func errRecordIssue(name string) error {
	return apperrors.NewBusinessRuleError(CodePersonNotFound,
		fmt.Sprintf("There was an issue getting %s's record. Please contact support.", name))
}

func errDutiesIssue(name string) error {
	return apperrors.NewBusinessRuleError(CodePersonNotFound,
		fmt.Sprintf("There was an issue getting %s's duties. Please contact support.", name))
}

func errNoRecords(name string) error {
	return apperrors.NewBusinessRuleError(CodePersonNotFound,
		fmt.Sprintf("Unable to find records for %s. Please contact support.", name))
}

func errPersonMissing() error {
	return apperrors.NewBusinessRuleError(CodePersonNotFound, msgPersonNotFound)
}
